package moderation

// defaultRules は両方の判定層が参照する唯一のルール定義です
// 宣言順が違反一覧の順序になります
var defaultRules = []Rule{
	{CategoryPhoneNumber, KindContact, RegexPattern(`\p{Nd}{10,}`), "Sharing phone numbers is not allowed."},
	{CategoryEmailAddress, KindContact, RegexPattern(`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`), "Sharing email addresses is not allowed."},
	{CategoryExternalURL, KindContact, RegexPattern(`https?://\S+`), "Links to external websites are not allowed."},

	{CategoryScriptTag, KindInjection, RegexPattern(`<\s*script\b`), "Script tags are not allowed."},
	{CategoryJavascriptScheme, KindInjection, RegexPattern(`javascript\s*:`), "JavaScript links are not allowed."},
	{CategoryVbscriptScheme, KindInjection, RegexPattern(`vbscript\s*:`), "VBScript links are not allowed."},
	{CategoryDataHTMLScheme, KindInjection, RegexPattern(`data\s*:\s*text/html`), "Embedded HTML data is not allowed."},
	{CategoryEvalCall, KindInjection, RegexPattern(`\beval\s*\(`), "Code evaluation is not allowed."},
	{CategoryCookieAccess, KindInjection, RegexPattern(`document\s*\.\s*cookie`), "Cookie access is not allowed."},
	{CategoryLocalStorageAccess, KindInjection, RegexPattern(`\blocalStorage\b`), "Local storage access is not allowed."},
	{CategorySessionStorageAccess, KindInjection, RegexPattern(`\bsessionStorage\b`), "Session storage access is not allowed."},
	{CategoryEmbeddedFrame, KindInjection, RegexPattern(`<\s*iframe\b`), "Embedded frames are not allowed."},
	{CategoryEmbeddedObject, KindInjection, RegexPattern(`<\s*object\b`), "Embedded objects are not allowed."},
	{CategoryEmbeddedEmbed, KindInjection, RegexPattern(`<\s*embed\b`), "Embedded content is not allowed."},
	{CategoryEventHandlerAttribute, KindInjection, RegexPattern(`\bon(?:load|error|click)\s*=`), "Inline event handlers are not allowed."},

	{CategoryPersonalInfo, KindAdvisory, LiteralWord("phone"), "Keep your phone number private."},
	{CategoryPersonalInfo, KindAdvisory, LiteralWord("address"), "Keep your address private."},
	{CategoryPersonalInfo, KindAdvisory, LiteralWord("email"), "Keep your email private."},
	{CategoryPersonalInfo, KindAdvisory, LiteralWord("password"), "Never share your password."},
	{CategorySecrecy, KindAdvisory, LiteralWord("secret"), "Talk to a trusted adult if someone asks you to keep secrets."},
	{CategorySecrecy, KindAdvisory, LiteralWord("don't tell"), "Talk to a trusted adult if someone asks you to keep secrets."},
	{CategoryMeetingRequest, KindAdvisory, LiteralWord("meet me"), "Never agree to meet someone from the internet."},
	{CategoryMeetingRequest, KindAdvisory, LiteralWord("come over"), "Never agree to meet someone from the internet."},
	{CategoryMeetingRequest, KindAdvisory, LiteralWord("visit me"), "Never agree to meet someone from the internet."},
	{CategoryMeetingRequest, KindAdvisory, LiteralWord("my house"), "Keep where you live private."},
	{CategoryMeetingRequest, KindAdvisory, LiteralWord("where do you live"), "Keep where you live private."},
	{CategorySocialPlatform, KindAdvisory, LiteralWord("instagram"), "Stay on the learning platform to chat."},
	{CategorySocialPlatform, KindAdvisory, LiteralWord("snapchat"), "Stay on the learning platform to chat."},
	{CategorySocialPlatform, KindAdvisory, LiteralWord("tiktok"), "Stay on the learning platform to chat."},
	{CategorySocialPlatform, KindAdvisory, LiteralWord("whatsapp"), "Stay on the learning platform to chat."},
	{CategorySocialPlatform, KindAdvisory, LiteralWord("discord"), "Stay on the learning platform to chat."},
	{CategorySocialPlatform, KindAdvisory, LiteralWord("facebook"), "Stay on the learning platform to chat."},
	{CategorySocialPlatform, KindAdvisory, LiteralWord("telegram"), "Stay on the learning platform to chat."},
	{CategorySocialPlatform, KindAdvisory, LiteralWord("kik"), "Stay on the learning platform to chat."},
}

// DefaultRules は既定のルール表のコピーを返します
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
