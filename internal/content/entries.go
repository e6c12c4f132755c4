// Package content holds the static reference bundles shown in the briefing
// and the rotation logic that picks a daily slice of them.
package content

// Entry is one reference item (a vocabulary word, a quote). Key is the stable
// identifier tracked in rotation history; Fields hold the localized display
// strings.
type Entry struct {
	Key    string
	Fields map[string]string
}

// VocabEntries is the TOEIC practice list. Loaded once, immutable for the
// process lifetime.
var VocabEntries = []Entry{
	{Key: "acquire", Fields: map[string]string{"chi": "獲得；取得", "example": "The company plans to acquire new assets next quarter."}},
	{Key: "allocate", Fields: map[string]string{"chi": "分配；撥出", "example": "We need to allocate more funds to marketing."}},
	{Key: "annual", Fields: map[string]string{"chi": "每年的；年度的", "example": "The annual report will be released in March."}},
	{Key: "benefit", Fields: map[string]string{"chi": "利益；好處", "example": "Employees receive health benefits."}},
	{Key: "comply", Fields: map[string]string{"chi": "遵守", "example": "All contractors must comply with the safety regulations."}},
	{Key: "contribute", Fields: map[string]string{"chi": "貢獻；捐助", "example": "She contributed significantly to the project."}},
	{Key: "deliver", Fields: map[string]string{"chi": "交付；傳遞", "example": "The courier will deliver the package by noon."}},
	{Key: "efficient", Fields: map[string]string{"chi": "有效率的", "example": "An efficient workflow saves time."}},
	{Key: "estimate", Fields: map[string]string{"chi": "估計；估算", "example": "Please provide an estimate for the repair costs."}},
	{Key: "negotiate", Fields: map[string]string{"chi": "談判；協商", "example": "They will negotiate the contract terms next week."}},
	{Key: "priority", Fields: map[string]string{"chi": "優先事項；優先權", "example": "Customer satisfaction is our top priority."}},
	{Key: "proposal", Fields: map[string]string{"chi": "提案；建議", "example": "Submit your proposal by the end of the month."}},
	{Key: "revenue", Fields: map[string]string{"chi": "收入；營收", "example": "The company reported increased revenue this quarter."}},
	{Key: "schedule", Fields: map[string]string{"chi": "時間表；安排", "example": "The meeting is scheduled for Friday."}},
	{Key: "strategic", Fields: map[string]string{"chi": "策略性的", "example": "They developed a strategic plan for expansion."}},
}

// QuoteEntries feeds the quote-of-the-day rotation. One entry per day,
// cycling through the list in order.
var QuoteEntries = []Entry{
	{Key: "quote-persist", Fields: map[string]string{"text": "不積跬步，無以至千里。", "author": "荀子"}},
	{Key: "quote-learning", Fields: map[string]string{"text": "學而不思則罔，思而不學則殆。", "author": "論語"}},
	{Key: "quote-time", Fields: map[string]string{"text": "一寸光陰一寸金，寸金難買寸光陰。", "author": "增廣賢文"}},
	{Key: "quote-start", Fields: map[string]string{"text": "千里之行，始於足下。", "author": "老子"}},
	{Key: "quote-practice", Fields: map[string]string{"text": "紙上得來終覺淺，絕知此事要躬行。", "author": "陸游"}},
	{Key: "quote-resolve", Fields: map[string]string{"text": "有志者，事竟成。", "author": "後漢書"}},
	{Key: "quote-reflect", Fields: map[string]string{"text": "吾日三省吾身。", "author": "論語"}},
}

// Horoscopes maps a zodiac sign to its daily template line.
var Horoscopes = map[string]string{
	"Taurus": "工作穩定，適合處理財務與細節。",
	"Cancer": "情感豐富，適合跟家人聯繫，注意休息。",
}
