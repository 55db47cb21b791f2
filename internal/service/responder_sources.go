package service

import (
	"context"

	"qa-assistant-be/internal/repository/contract"
	"qa-assistant-be/pkg/responder"
)

// The engine only sees two narrow read interfaces; these adapters back them
// with the content repositories.

type annotationPairSource struct {
	annotations contract.AnnotationRepository
}

func NewAnnotationPairSource(annotations contract.AnnotationRepository) responder.PairSource {
	return &annotationPairSource{annotations: annotations}
}

func (s *annotationPairSource) QuestionPairs(ctx context.Context, userToken string) ([]responder.QuestionPair, error) {
	annotations, err := s.annotations.List(ctx, userToken, contract.AnnotationFilter{})
	if err != nil {
		return nil, err
	}
	var pairs []responder.QuestionPair
	for _, annotation := range annotations {
		sourceType := responder.SourceAnnotation
		if annotation.SavedReply {
			sourceType = responder.SourceSavedReply
		}
		documentID := ""
		if annotation.DocumentID != nil {
			documentID = *annotation.DocumentID
		}
		answer := annotation.CanonicalAnswer()
		pairs = append(pairs, responder.QuestionPair{
			SourceID:   annotation.AnnotationID,
			SourceType: sourceType,
			Question:   annotation.Question,
			Answer:     answer,
			DocumentID: documentID,
		})
		for _, paraphrase := range annotation.Paraphrases {
			pairs = append(pairs, responder.QuestionPair{
				SourceID:   annotation.AnnotationID,
				SourceType: sourceType,
				Question:   paraphrase.Question,
				Answer:     answer,
				DocumentID: documentID,
			})
		}
	}
	return pairs, nil
}

type documentTextSource struct {
	documents contract.DocumentRepository
}

func NewDocumentTextSource(documents contract.DocumentRepository) responder.DocumentSource {
	return &documentTextSource{documents: documents}
}

func (s *documentTextSource) DocumentTexts(ctx context.Context, userToken string, documentIDs []string) ([]responder.DocumentText, error) {
	documents, err := s.documents.List(ctx, userToken, documentIDs, "")
	if err != nil {
		return nil, err
	}
	texts := make([]responder.DocumentText, 0, len(documents))
	for _, document := range documents {
		texts = append(texts, responder.DocumentText{
			DocumentID: document.DocumentID,
			Title:      document.Title,
			Text:       document.Text,
		})
	}
	return texts, nil
}
