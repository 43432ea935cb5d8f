package detector

import (
	lingua "github.com/pemistahl/lingua-go"

	"github.com/valpere/tradcompare/internal/language"
)

// linguaLanguages are the registry languages lingua can recognise. Galician
// has no lingua model and is never detected.
var linguaLanguages = map[lingua.Language]language.Language{
	lingua.Spanish:    language.Spanish,
	lingua.Italian:    language.Italian,
	lingua.Portuguese: language.Portuguese,
	lingua.Catalan:    language.Catalan,
}

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	langs := make([]lingua.Language, 0, len(linguaLanguages))
	for l := range linguaLanguages {
		langs = append(langs, l)
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()

	return &Detector{detector: detector}
}

// Detect returns the registry language text is most likely written in.
func (d *Detector) Detect(text string) (language.Language, bool) {
	if text == "" {
		return 0, false
	}
	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return 0, false
	}
	l, ok := linguaLanguages[detected]
	return l, ok
}
