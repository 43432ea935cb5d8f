package translator

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"

	"github.com/valpere/tradcompare/internal/language"
)

const AmazonTranslateName = "aws-translate"

var amazonCodes = language.CodeMap{
	language.Spanish:    "es",
	language.Italian:    "it",
	language.Portuguese: "pt-PT",
	language.Catalan:    "ca",
}

// AmazonTranslateAPI is the part of the Amazon Translate client used here.
type AmazonTranslateAPI interface {
	TranslateText(ctx context.Context, params *awstranslate.TranslateTextInput, optFns ...func(*awstranslate.Options)) (*awstranslate.TranslateTextOutput, error)
}

// AmazonTranslateBackend calls the managed Amazon Translate service directly
// rather than through an inference endpoint.
type AmazonTranslateBackend struct {
	client AmazonTranslateAPI
	codes  language.CodeMap
}

func NewAmazonTranslateBackend(cfg aws.Config) *AmazonTranslateBackend {
	return &AmazonTranslateBackend{
		client: awstranslate.NewFromConfig(cfg),
		codes:  amazonCodes,
	}
}

func (b *AmazonTranslateBackend) Name() string {
	return AmazonTranslateName
}

func (b *AmazonTranslateBackend) SupportedLanguages() []language.Language {
	return b.codes.Supported()
}

func (b *AmazonTranslateBackend) LanguageCode(l language.Language) (string, bool) {
	return b.codes.Code(l)
}

func (b *AmazonTranslateBackend) Translate(ctx context.Context, req Request) (Result, error) {
	source, target, ok := resolvePair(&b.codes, req)
	if !ok {
		return Unsupported(), nil
	}
	if req.Text == "" {
		return Translated(""), nil
	}

	out, err := b.client.TranslateText(ctx, &awstranslate.TranslateTextInput{
		Text:               aws.String(req.Text),
		SourceLanguageCode: aws.String(source),
		TargetLanguageCode: aws.String(target),
	})
	if err != nil {
		return Result{}, invocationError(b.Name(), 0, err)
	}
	if out.TranslatedText == nil {
		return Result{}, invocationError(b.Name(), 0, errors.New("no translation returned"))
	}

	return Translated(aws.ToString(out.TranslatedText)), nil
}
