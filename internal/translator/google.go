package translator

import (
	"context"
	"errors"
	"fmt"

	translate "cloud.google.com/go/translate"
	xlanguage "golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/valpere/tradcompare/internal/language"
)

const GoogleTranslateName = "google-translate"

var googleCodes = language.CodeMap{
	language.Spanish:    "es",
	language.Italian:    "it",
	language.Portuguese: "pt",
	language.Catalan:    "ca",
	language.Galician:   "gl",
}

// GoogleTranslateAPI is the part of the Cloud Translation client used here.
type GoogleTranslateAPI interface {
	Translate(ctx context.Context, inputs []string, target xlanguage.Tag, opts *translate.Options) ([]translate.Translation, error)
	Close() error
}

type GoogleBackend struct {
	client GoogleTranslateAPI
	codes  language.CodeMap
}

// NewGoogleBackend opens a Cloud Translation client. credentialsFile may be
// empty to use application default credentials; projectID, when set, is
// billed as the quota project. Close releases the client.
func NewGoogleBackend(ctx context.Context, credentialsFile, projectID string) (*GoogleBackend, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if projectID != "" {
		opts = append(opts, option.WithQuotaProject(projectID))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &GoogleBackend{client: client, codes: googleCodes}, nil
}

func (b *GoogleBackend) Name() string {
	return GoogleTranslateName
}

func (b *GoogleBackend) SupportedLanguages() []language.Language {
	return b.codes.Supported()
}

func (b *GoogleBackend) LanguageCode(l language.Language) (string, bool) {
	return b.codes.Code(l)
}

func (b *GoogleBackend) Translate(ctx context.Context, req Request) (Result, error) {
	source, target, ok := resolvePair(&b.codes, req)
	if !ok {
		return Unsupported(), nil
	}
	if req.Text == "" {
		return Translated(""), nil
	}

	sourceTag, err := xlanguage.Parse(source)
	if err != nil {
		return Result{}, fmt.Errorf("invalid source language %q: %w", source, err)
	}
	targetTag, err := xlanguage.Parse(target)
	if err != nil {
		return Result{}, fmt.Errorf("invalid target language %q: %w", target, err)
	}

	translations, err := b.client.Translate(ctx, []string{req.Text}, targetTag, &translate.Options{
		Source: sourceTag,
		Format: translate.Text,
	})
	if err != nil {
		return Result{}, invocationError(b.Name(), 0, err)
	}
	if len(translations) == 0 {
		return Result{}, invocationError(b.Name(), 0, errors.New("no translation returned"))
	}

	return Translated(translations[0].Text), nil
}

func (b *GoogleBackend) Close() error {
	return b.client.Close()
}
