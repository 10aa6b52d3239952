package dictionary

import (
	"fmt"

	"github.com/kailas-cloud/iskwet/internal/domain/word"
)

// fileDTO is the on-disk layout: {"words": [...]}.
type fileDTO struct {
	Words *[]wordDTO `json:"words"`
}

// stringsDTO keeps element pointers so a null entry is not decoded as "".
type stringsDTO []*string

// langMapDTO maps a language to its list of strings.
type langMapDTO map[string]stringsDTO

// wordDTO uses pointers so that absent and null fields can be told apart from empty ones.
type wordDTO struct {
	UUID         *string     `json:"uuid"`
	Definitions  *langMapDTO `json:"definitions"`
	Synonyms     *langMapDTO `json:"synonyms"`
	Antonyms     *langMapDTO `json:"antonyms"`
	Dependencies *stringsDTO `json:"dependencies"`
	Dependers    *stringsDTO `json:"dependers"`
	Description  *string     `json:"description"`
}

// toDomain converts a decoded entry into a Word. Every field is required.
func (d *wordDTO) toDomain() (word.Word, error) {
	switch {
	case d.UUID == nil:
		return word.Word{}, errMissing("uuid")
	case d.Definitions == nil:
		return word.Word{}, errMissing("definitions")
	case d.Synonyms == nil:
		return word.Word{}, errMissing("synonyms")
	case d.Antonyms == nil:
		return word.Word{}, errMissing("antonyms")
	case d.Dependencies == nil:
		return word.Word{}, errMissing("dependencies")
	case d.Dependers == nil:
		return word.Word{}, errMissing("dependers")
	case d.Description == nil:
		return word.Word{}, errMissing("description")
	}

	w := word.Word{UUID: *d.UUID, Description: *d.Description}
	var err error
	if w.Definitions, err = d.Definitions.toDomain("definitions"); err != nil {
		return word.Word{}, err
	}
	if w.Synonyms, err = d.Synonyms.toDomain("synonyms"); err != nil {
		return word.Word{}, err
	}
	if w.Antonyms, err = d.Antonyms.toDomain("antonyms"); err != nil {
		return word.Word{}, err
	}
	if w.Dependencies, err = d.Dependencies.toDomain("dependencies"); err != nil {
		return word.Word{}, err
	}
	if w.Dependers, err = d.Dependers.toDomain("dependers"); err != nil {
		return word.Word{}, err
	}
	return w, nil
}

func (m langMapDTO) toDomain(field string) (map[string][]string, error) {
	out := make(map[string][]string, len(m))
	for lang, list := range m {
		if list == nil {
			return nil, fmt.Errorf("field %q: language %q is null", field, lang)
		}
		values, err := list.toDomain(field + "." + lang)
		if err != nil {
			return nil, err
		}
		out[lang] = values
	}
	return out, nil
}

func (l stringsDTO) toDomain(field string) ([]string, error) {
	out := make([]string, len(l))
	for i, v := range l {
		if v == nil {
			return nil, fmt.Errorf("field %q: element %d is null", field, i)
		}
		out[i] = *v
	}
	return out, nil
}

func errMissing(field string) error {
	return fmt.Errorf("missing field %q", field)
}
