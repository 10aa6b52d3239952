package word

// Word is a single dictionary/thesaurus entry.
// Relation fields hold identifiers of other words; they are not checked against the dictionary.
type Word struct {
	UUID         string              `json:"uuid"`
	Definitions  map[string][]string `json:"definitions"`
	Synonyms     map[string][]string `json:"synonyms"`
	Antonyms     map[string][]string `json:"antonyms"`
	Dependencies []string            `json:"dependencies"`
	Dependers    []string            `json:"dependers"`
	Description  string              `json:"description"`
}

// DefinitionsIn returns the definitions for lang and whether the language is present.
func (w *Word) DefinitionsIn(lang string) ([]string, bool) {
	defs, ok := w.Definitions[lang]
	return defs, ok
}

// HasDefinition reports whether def is one of the definitions listed for lang.
// The match is exact element membership, not substring search.
// A word without lang never matches.
func (w *Word) HasDefinition(lang, def string) bool {
	defs, ok := w.DefinitionsIn(lang)
	if !ok {
		return false
	}
	for _, d := range defs {
		if d == def {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the word.
func (w *Word) Clone() Word {
	return Word{
		UUID:         w.UUID,
		Definitions:  cloneListMap(w.Definitions),
		Synonyms:     cloneListMap(w.Synonyms),
		Antonyms:     cloneListMap(w.Antonyms),
		Dependencies: cloneList(w.Dependencies),
		Dependers:    cloneList(w.Dependers),
		Description:  w.Description,
	}
}

func cloneList(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneListMap(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = cloneList(v)
	}
	return out
}
