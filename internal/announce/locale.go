package announce

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supported = []language.Tag{language.TraditionalChinese, language.English}
	matcher   = language.NewMatcher(supported)
)

// ParseTag resolves a configured locale to a supported one, falling back to the first supported locale.
func ParseTag(value string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return supported[0]
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return supported[0]
	}

	return supported[index]
}

// MatchAcceptLanguage picks the supported locale for an Accept-Language header value.
func MatchAcceptLanguage(header string, fallback language.Tag) language.Tag {
	if strings.TrimSpace(header) == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}

	return supported[index]
}

func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
