// Package service exposes one wrapper per entity type that tries the
// remote gateway first and, when mock mode is on, transparently serves
// the equivalent operation from the local fallback store instead.
package service

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/planbookai/planbook/internal/api"
	"github.com/planbookai/planbook/internal/store"
)

// Policy controls the remote-first dispatch.
type Policy struct {
	// MockFallback enables falling back to the local store when the
	// gateway call fails. When off, remote errors propagate unchanged.
	MockFallback bool
	// PropagateValidation exempts validation-class failures (4xx with a
	// structured detail) from fallback, so a genuine rejection by the
	// gateway is not silently masked by locally stored data.
	PropagateValidation bool
}

// dispatch runs remote first and falls back to local per the policy,
// logging every fallback for diagnosis.
func dispatch[T any](ctx context.Context, log *zap.Logger, op string, pol Policy,
	remote func(context.Context) (T, error),
	local func(context.Context) (T, error),
) (T, error) {
	out, err := remote(ctx)
	if err == nil {
		return out, nil
	}
	if !pol.MockFallback {
		return out, err
	}
	if pol.PropagateValidation && api.IsValidation(err) {
		return out, err
	}
	log.Warn("gateway unavailable, serving from local store",
		zap.String("op", op),
		zap.Error(err),
	)
	return local(ctx)
}

// query converts store filters into gateway query parameters.
func query(f store.Filters) url.Values {
	if len(f.Fields) == 0 && f.Search == "" {
		return nil
	}
	q := url.Values{}
	for k, v := range f.Fields {
		q.Set(k, v)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// Services bundles every entity wrapper over one gateway client and one
// local store.
type Services struct {
	Questions  *QuestionService
	Exams      *ExamService
	Lessons    *LessonService
	Templates  *TemplateService
	Packages   *PackageService
	Curriculum *CurriculumService
	Users      *UserService
	OCR        *OCRService
}

// New wires the services.
func New(client *api.Client, st *store.Store, log *zap.Logger, pol Policy) *Services {
	if log == nil {
		log = zap.NewNop()
	}
	return &Services{
		Questions:  &QuestionService{api: client, local: st.Questions, log: log, pol: pol},
		Exams:      &ExamService{api: client, local: st.Exams, log: log, pol: pol},
		Lessons:    &LessonService{api: client, local: st.Lessons, log: log, pol: pol},
		Templates:  &TemplateService{api: client, local: st.Templates, log: log, pol: pol},
		Packages:   &PackageService{api: client, local: st.Packages, log: log, pol: pol},
		Curriculum: &CurriculumService{api: client, local: st.Curriculum, log: log, pol: pol},
		Users:      &UserService{api: client, local: st.Users, log: log, pol: pol},
		OCR:        &OCRService{api: client},
	}
}
