package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/repository/contract"
)

type fakeAnnotationRepo struct {
	annotations []*entity.Annotation
	created     []*entity.Annotation
}

func (f *fakeAnnotationRepo) Create(_ context.Context, annotation *entity.Annotation) error {
	f.created = append(f.created, annotation)
	f.annotations = append(f.annotations, annotation)
	return nil
}

func (f *fakeAnnotationRepo) Find(_ context.Context, _, annotationID string) (*entity.Annotation, error) {
	for _, a := range f.annotations {
		if a.AnnotationID == annotationID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAnnotationRepo) List(_ context.Context, _ string, filter contract.AnnotationFilter) ([]*entity.Annotation, error) {
	var out []*entity.Annotation
	for _, a := range f.annotations {
		if a.SavedReply == filter.SavedReplies {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAnnotationRepo) Delete(context.Context, string, string) error {
	return contract.ErrNotFound
}
func (f *fakeAnnotationRepo) DeleteAllByUser(context.Context, string) error {
	return nil
}
func (f *fakeAnnotationRepo) EditCanonicalQuestion(context.Context, string, string, string) error {
	return contract.ErrNotFound
}
func (f *fakeAnnotationRepo) AddParaphrase(context.Context, string, string, string) (string, error) {
	return "", contract.ErrNotFound
}
func (f *fakeAnnotationRepo) EditParaphrase(context.Context, string, string, string) error {
	return contract.ErrNotFound
}
func (f *fakeAnnotationRepo) DeleteParaphrase(context.Context, string, string) error {
	return contract.ErrNotFound
}
func (f *fakeAnnotationRepo) AddAnswer(context.Context, string, string, string) (string, error) {
	return "", contract.ErrNotFound
}
func (f *fakeAnnotationRepo) EditAnswer(context.Context, string, string, string) error {
	return contract.ErrNotFound
}
func (f *fakeAnnotationRepo) DeleteAnswer(context.Context, string, string) error {
	return contract.ErrNotFound
}

var _ contract.AnnotationRepository = (*fakeAnnotationRepo)(nil)

func TestCreateAnnotationAnchorsOffsetsInMetadata(t *testing.T) {
	repo := &fakeAnnotationRepo{}
	svc := NewAnnotationService(repo)

	annotation, err := svc.CreateAnnotation(context.Background(), testUser(),
		"Where is the office?", "Berlin", "doc-1", "2", 120, 126,
		map[string]interface{}{"color": "blue"})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	stored := repo.created[0]
	require.NotNil(t, stored.DocumentID)
	assert.Equal(t, "doc-1", *stored.DocumentID)
	require.NotNil(t, stored.Page)
	assert.Equal(t, "2", *stored.Page)
	assert.Equal(t, 120, stored.Metadata["startOffset"])
	assert.Equal(t, 126, stored.Metadata["endOffset"])
	assert.Equal(t, "blue", stored.Metadata["color"])
	assert.False(t, stored.SavedReply)
	require.Len(t, annotation.Answers, 1)
	assert.Equal(t, "Berlin", annotation.Answers[0].Answer)
}

func TestCreateAnnotationWithoutClientMetadata(t *testing.T) {
	repo := &fakeAnnotationRepo{}
	svc := NewAnnotationService(repo)

	_, err := svc.CreateAnnotation(context.Background(), testUser(),
		"q", "a", "doc-1", "", 0, 4, nil)
	require.NoError(t, err)

	stored := repo.created[0]
	assert.Equal(t, 0, stored.Metadata["startOffset"])
	assert.Equal(t, 4, stored.Metadata["endOffset"])
	assert.Nil(t, stored.Page)
}

func TestDeleteUnknownAnnotation(t *testing.T) {
	svc := NewAnnotationService(&fakeAnnotationRepo{})

	err := svc.Delete(context.Background(), testUser(), "missing", false)
	require.Error(t, err)
	var userErr *apierr.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Error(), "missing")
}
