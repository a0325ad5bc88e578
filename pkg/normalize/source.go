package normalize

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// knownSources maps lowercase publisher name variants and domains to display names
var knownSources = map[string]string{
	"the times of india":       "Times of India",
	"times of india":           "Times of India",
	"toi":                      "Times of India",
	"indiatimes.com":           "Times of India",
	"the hindu":                "The Hindu",
	"thehindu.com":             "The Hindu",
	"hindustan times":          "Hindustan Times",
	"hindustantimes.com":       "Hindustan Times",
	"ndtv":                     "NDTV",
	"ndtv.com":                 "NDTV",
	"ndtv news":                "NDTV",
	"the indian express":       "Indian Express",
	"indian express":           "Indian Express",
	"indianexpress.com":        "Indian Express",
	"the economic times":       "Economic Times",
	"economic times":           "Economic Times",
	"livemint":                 "Mint",
	"livemint.com":             "Mint",
	"mint":                     "Mint",
	"bbc news":                 "BBC News",
	"bbc":                      "BBC News",
	"bbc.co.uk":                "BBC News",
	"reuters":                  "Reuters",
	"reuters.com":              "Reuters",
	"the guardian":             "The Guardian",
	"theguardian.com":          "The Guardian",
	"al jazeera":               "Al Jazeera",
	"al jazeera english":       "Al Jazeera",
	"aljazeera.com":            "Al Jazeera",
	"cnn":                      "CNN",
	"cnn.com":                  "CNN",
	"cnn.com - rss channel":    "CNN",
	"the new york times":       "New York Times",
	"nytimes.com":              "New York Times",
	"techcrunch":               "TechCrunch",
	"techcrunch.com":           "TechCrunch",
	"the verge":                "The Verge",
	"theverge.com":             "The Verge",
	"espncricinfo":             "ESPNcricinfo",
	"espncricinfo.com":         "ESPNcricinfo",
	"cricinfo":                 "ESPNcricinfo",
	"moneycontrol":             "Moneycontrol",
	"moneycontrol.com":         "Moneycontrol",
	"moneycontrol latest news": "Moneycontrol",
	"news18":                   "News18",
	"news18.com":               "News18",
	"india today":              "India Today",
	"indiatoday.in":            "India Today",
	"ani news":                 "ANI",
	"aninews.in":               "ANI",
	"press trust of india":     "PTI",
	"pti":                      "PTI",
	"associated press":         "AP",
	"ap news":                  "AP",
	"apnews.com":               "AP",
	"dt next":                  "DT Next",
	"dtnext.in":                "DT Next",
	"the new indian express":   "New Indian Express",
	"newindianexpress.com":     "New Indian Express",
	"deccan herald":            "Deccan Herald",
	"deccanherald.com":         "Deccan Herald",
	"business standard":        "Business Standard",
	"business-standard.com":    "Business Standard",
	"financial express":        "Financial Express",
	"financialexpress.com":     "Financial Express",
}

// aggregators maps search aggregator names, titled like "<query> - <aggregator>", to display names
var aggregators = map[string]string{
	"google news": "Google News",
	"yahoo news":  "Yahoo News",
	"bing news":   "Bing News",
}

// CleanSource returns the canonical display name of a feed publisher.
// Empty feed titles fall back to the registrable domain of the article link.
func CleanSource(feedTitle, link string) string {
	name := strings.Join(strings.Fields(feedTitle), " ")
	key := strings.ToLower(name)

	if name != "" {
		if canonical, ok := knownSources[key]; ok {
			return canonical
		}
		if idx := strings.LastIndex(key, " - "); idx >= 0 {
			suffix := strings.TrimSpace(key[idx+3:])
			if canonical, ok := aggregators[suffix]; ok {
				return canonical
			}
			if canonical, ok := knownSources[strings.TrimSpace(key[:idx])]; ok {
				return canonical // "BBC News - World", "NDTV News - Top Stories"
			}
		}
		if canonical, ok := aggregators[key]; ok {
			return canonical
		}
		return name
	}

	host := domainOf(link)
	if host == "" {
		return "Unknown"
	}
	if canonical, ok := knownSources[host]; ok {
		return canonical
	}
	return host
}

// domainOf returns the registrable domain (eTLD+1) of a link
func domainOf(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return strings.TrimPrefix(host, "www.")
	}
	return d
}
