package gatekeeper

import "strings"

var botUserAgentTokens = []string{
	"bot", "crawler", "spider", "scraper",
	"headless", "phantomjs", "selenium", "puppeteer", "playwright",
	"curl", "wget", "python-requests", "python-urllib", "aiohttp", "httpx", "scrapy",
	"go-http-client", "okhttp", "axios", "node-fetch", "java/", "libwww",
	"postman", "insomnia",
}

// IsBotUserAgent reports whether ua is empty or carries an automation token.
func IsBotUserAgent(ua string) bool {
	ua = strings.ToLower(strings.TrimSpace(ua))
	if ua == "" {
		return true
	}
	for _, token := range botUserAgentTokens {
		if strings.Contains(ua, token) {
			return true
		}
	}
	return false
}
