// Package memstore はレート制限バケット・セッション記録・セッション無効化リストの
// プロセス内実装を提供します。単一インスタンス構成と開発・テスト用です。
//
// 各ストアはミューテックスで保護したmapを持ち、読み書きは1回のロック内で完結します。
// 期限切れのエントリは参照時またはHitの一定回数ごとに削除します。
// 複数インスタンスで水平スケールする場合はRedis実装（cache パッケージ）を使用してください。
package memstore
