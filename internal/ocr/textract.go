package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/aws/smithy-go"

	"property-backend/internal/extraction"
)

// Textract extracts key/value pairs and line text with AWS Textract's
// AnalyzeDocument (FORMS + TABLES).
type Textract struct {
	client *textract.Client
}

// NewTextract builds a Textract client from the default AWS credential chain.
func NewTextract(ctx context.Context, region string) (*Textract, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Textract{client: textract.NewFromConfig(cfg)}, nil
}

// Extract runs AnalyzeDocument on the file bytes.
func (t *Textract) Extract(ctx context.Context, fileBytes []byte, mimeType string) (Output, error) {
	_ = mimeType // Textract sniffs the payload itself.

	resp, err := t.client.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
		Document:     &types.Document{Bytes: fileBytes},
		FeatureTypes: []types.FeatureType{types.FeatureTypeForms, types.FeatureTypeTables},
	})
	if err != nil {
		return Output{}, mapAWSError(err)
	}
	return parseBlocks(resp.Blocks), nil
}

// parseBlocks walks the Textract block graph: KEY_VALUE_SET blocks with the
// KEY entity type yield ordered key/value pairs (text assembled from CHILD
// WORD blocks), LINE blocks joined in order form the raw text.
func parseBlocks(blocks []types.Block) Output {
	byID := make(map[string]types.Block, len(blocks))
	for _, b := range blocks {
		if b.Id != nil {
			byID[*b.Id] = b
		}
	}

	var out Output
	var lines []string
	var confidenceSum float64
	var confidenceCount int

	for _, b := range blocks {
		if b.Confidence != nil && (b.BlockType == types.BlockTypeLine || b.BlockType == types.BlockTypeKeyValueSet) {
			confidenceSum += float64(*b.Confidence)
			confidenceCount++
		}

		switch b.BlockType {
		case types.BlockTypeLine:
			if b.Text != nil && *b.Text != "" {
				lines = append(lines, *b.Text)
			}
		case types.BlockTypeKeyValueSet:
			if !hasEntityType(b, types.EntityTypeKey) {
				continue
			}
			key := childText(b, byID)
			value := valueText(b, byID)
			if key != "" && value != "" {
				out.KeyValues = append(out.KeyValues, extraction.KeyValue{Key: key, Value: value})
			}
		}
	}

	out.RawText = strings.Join(lines, "\n")
	if confidenceCount > 0 {
		out.Confidence = confidenceSum / float64(confidenceCount)
	}
	return out
}

func hasEntityType(b types.Block, want types.EntityType) bool {
	for _, et := range b.EntityTypes {
		if et == want {
			return true
		}
	}
	return false
}

// childText joins the WORD children of a block in order.
func childText(b types.Block, byID map[string]types.Block) string {
	var words []string
	for _, rel := range b.Relationships {
		if rel.Type != types.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			child, ok := byID[id]
			if !ok {
				continue
			}
			if child.BlockType == types.BlockTypeWord && child.Text != nil {
				words = append(words, *child.Text)
			}
		}
	}
	return strings.Join(words, " ")
}

// valueText resolves a KEY block's VALUE relationship and assembles its text.
func valueText(key types.Block, byID map[string]types.Block) string {
	for _, rel := range key.Relationships {
		if rel.Type != types.RelationshipTypeValue {
			continue
		}
		for _, id := range rel.Ids {
			valueBlock, ok := byID[id]
			if !ok {
				continue
			}
			if text := childText(valueBlock, byID); text != "" {
				return text
			}
		}
	}
	return ""
}

// mapAWSError converts an AWS failure into the collaborator error taxonomy.
func mapAWSError(err error) *Error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch code {
		case "UnrecognizedClientException", "InvalidSignatureException", "MissingAuthenticationToken":
			return &Error{
				Kind:             KindCredentialsMissing,
				Message:          "AWS credentials are invalid or missing. Configure credentials with Textract access.",
				TechnicalDetails: err.Error(),
			}
		case "SubscriptionRequiredException":
			return &Error{
				Kind:             KindSubscriptionRequired,
				Message:          "AWS Textract subscription required. Enable Textract for this AWS account.",
				TechnicalDetails: err.Error(),
			}
		case "AccessDeniedException", "UnauthorizedOperation":
			return &Error{
				Kind:             KindAccessDenied,
				Message:          "AWS access denied. Check that the IAM user has Textract permissions.",
				TechnicalDetails: err.Error(),
			}
		case "ProvisionedThroughputExceededException", "ThrottlingException", "LimitExceededException":
			return &Error{
				Kind:             KindGeneric,
				Message:          "AWS Textract is temporarily unavailable. Try again shortly.",
				TechnicalDetails: err.Error(),
			}
		case "InvalidParameterException", "UnsupportedDocumentException":
			return &Error{
				Kind:             KindGeneric,
				Message:          "Invalid file format. Textract supports PDF, PNG, JPEG and TIFF files.",
				TechnicalDetails: err.Error(),
			}
		}
	}
	return &Error{
		Kind:             KindGeneric,
		Message:          "document text extraction failed",
		TechnicalDetails: err.Error(),
	}
}

var _ Client = (*Textract)(nil)
