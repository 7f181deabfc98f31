package retrieval

import (
	"regexp"
	"strings"
)

// pandalunganMapping rewrites Pandalungan (Jember-area) slang to standard
// Indonesian so the embedding model understands the query.
var pandalunganMapping = map[string]string{
	"nandi":       "dimana",
	"ndi":         "dimana",
	"nggon":       "tempat",
	"dolan":       "wisata",
	"mangan":      "kuliner",
	"wenak":       "enak",
	"mbois":       "keren",
	"apik":        "bagus",
	"tretan":      "teman",
	"lur":         "teman",
	"kancah":      "teman",
	"rek":         "teman",
	"panganan":    "makanan",
	"mlaku-mlaku": "jalan-jalan",
	"ngopi":       "kafe",
	"dhuk":        "jauh",
	"parak":       "dekat",
	"isun":        "saya",
	"engkok":      "saya",
	"reang":       "saya",
	"kakeh":       "kamu",
	"riko":        "kamu",
	"mancall":     "berangkat",
	"ngosek":      "beristirahat",
}

// wordPattern matches whole words including hyphenated compounds such as
// "mlaku-mlaku", so replacement never touches substrings of longer words.
var wordPattern = regexp.MustCompile(`[\pL\pN]+(?:-[\pL\pN]+)*`)

// Normalizer rewrites regional slang tokens to standard-language tokens.
type Normalizer struct {
	mapping map[string]string
}

// NewNormalizer creates a normalizer with the default Pandalungan mapping.
func NewNormalizer() *Normalizer {
	return &Normalizer{mapping: pandalunganMapping}
}

// NewNormalizerWithMapping creates a normalizer with a custom mapping. Keys
// must be lower case.
func NewNormalizerWithMapping(mapping map[string]string) *Normalizer {
	return &Normalizer{mapping: mapping}
}

// Normalize lower-cases the text and replaces each whole-word token found in
// the mapping with its standard form. Unmapped tokens pass through unchanged.
func (n *Normalizer) Normalize(text string) string {
	lowered := strings.ToLower(text)

	return wordPattern.ReplaceAllStringFunc(lowered, func(word string) string {
		if standard, ok := n.mapping[word]; ok {
			return standard
		}
		return word
	})
}
