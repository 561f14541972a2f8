package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/mouse-blink/covfold/internal/domain"
)

// mockWorkflow is a hand-rolled testify mock for domain.Workflow.
type mockWorkflow struct {
	mock.Mock
}

func newMockWorkflow(t *testing.T) *mockWorkflow {
	t.Helper()

	m := &mockWorkflow{}
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockWorkflow) Merge(ctx context.Context, args domain.MergeArgs) error {
	return m.Called(ctx, args).Error(0)
}

func (m *mockWorkflow) Report(ctx context.Context, args domain.ReportArgs) error {
	return m.Called(ctx, args).Error(0)
}

func (m *mockWorkflow) Check(ctx context.Context, args domain.CheckArgs) error {
	return m.Called(ctx, args).Error(0)
}

func (m *mockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	return m.Called(ctx, args).Error(0)
}
