package locale

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength caps header parsing to avoid oversized inputs.
const maxAcceptLanguageLength = 4096

type weightedTag struct {
	tag     string
	quality float64
}

// ParseAcceptLanguage picks the best match from available for an HTTP
// Accept-Language header. Quality values are honored; an exact tag match
// beats a base-language match of equal quality. With no match (or an empty
// header) the first available locale wins.
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if header == "" {
		return available[0]
	}

	tags := parseWeightedTags(header)

	bestQuality := -1.0
	bestExact := false
	best := ""

	for _, avail := range available {
		norm := strings.ToLower(avail)
		for _, tag := range tags {
			exact := tag.tag == norm
			if !exact && Base(tag.tag) != Base(norm) {
				continue
			}
			better := tag.quality > bestQuality ||
				(tag.quality == bestQuality && exact && !bestExact)
			if better {
				best = avail
				bestQuality = tag.quality
				bestExact = exact
			}
			break
		}
	}

	if best != "" {
		return best
	}
	return available[0]
}

func parseWeightedTags(header string) []weightedTag {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []weightedTag
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		tag, qPart, hasQ := strings.Cut(part, ";")
		tag = strings.ToLower(strings.TrimSpace(tag))

		if hasQ {
			qPart = strings.TrimSpace(qPart)
			if q, ok := strings.CutPrefix(qPart, "q="); ok {
				if parsed, err := strconv.ParseFloat(q, 64); err == nil && parsed >= 0 && parsed <= 1 {
					quality = parsed
				}
			}
		}

		if tag != "" && tag != "*" {
			tags = append(tags, weightedTag{tag: tag, quality: quality})
		}
	}

	slices.SortStableFunc(tags, func(a, b weightedTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return tags
}
