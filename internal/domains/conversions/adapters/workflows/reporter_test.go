package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	conversionworkflows "github.com/Apurer/go-gin-shop-api/internal/platform/temporal/workflows/conversions"
)

type fakeStarter struct {
	options  client.StartWorkflowOptions
	workflow interface{}
	args     []interface{}
	err      error
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error) {
	f.options = options
	f.workflow = workflow
	f.args = args
	return nil, f.err
}

func conversion() domain.Conversion {
	return domain.Conversion{OrderID: "1700000000000", UserID: "alice", VisitorCode: "abc", GoalID: 406352}
}

func TestReport_StartsWorkflowPerOrder(t *testing.T) {
	starter := &fakeStarter{}
	reporter, err := NewTemporalReporter(starter)
	require.NoError(t, err)

	require.NoError(t, reporter.Report(context.Background(), conversion()))
	require.Equal(t, "conversion-1700000000000-alice-abc", starter.options.ID)
	require.Equal(t, conversionworkflows.ReportTaskQueue, starter.options.TaskQueue)
	require.Equal(t, enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE, starter.options.WorkflowIDReusePolicy)
	require.Equal(t, conversionworkflows.ReportWorkflowName, starter.workflow)
	require.Len(t, starter.args, 1)
	input, ok := starter.args[0].(conversionworkflows.ReportWorkflowInput)
	require.True(t, ok)
	require.Equal(t, conversion(), input.Conversion)
}

func TestReport_AlreadyStartedIsSuccess(t *testing.T) {
	reporter, err := NewTemporalReporter(&fakeStarter{
		err: serviceerror.NewWorkflowExecutionAlreadyStarted("exists", "", "run"),
	})
	require.NoError(t, err)
	require.NoError(t, reporter.Report(context.Background(), conversion()))
}

func TestReport_StartFailure(t *testing.T) {
	boom := errors.New("unavailable")
	reporter, err := NewTemporalReporter(&fakeStarter{err: boom})
	require.NoError(t, err)
	require.ErrorIs(t, reporter.Report(context.Background(), conversion()), boom)
}

func TestReport_InvalidConversionNotStarted(t *testing.T) {
	starter := &fakeStarter{}
	reporter, err := NewTemporalReporter(starter)
	require.NoError(t, err)

	invalid := conversion()
	invalid.VisitorCode = ""
	require.ErrorIs(t, reporter.Report(context.Background(), invalid), domain.ErrMissingVisitorCode)
	require.Empty(t, starter.options.ID)
}

func TestReport_SameMillisecondCheckoutsGetDistinctWorkflows(t *testing.T) {
	starter := &fakeStarter{}
	reporter, err := NewTemporalReporter(starter)
	require.NoError(t, err)

	first := conversion()
	second := conversion()
	second.UserID = "bob"
	second.VisitorCode = "def"

	require.NoError(t, reporter.Report(context.Background(), first))
	firstID := starter.options.ID
	require.NoError(t, reporter.Report(context.Background(), second))
	require.NotEqual(t, firstID, starter.options.ID)

	sameVisitor := conversion()
	sameVisitor.UserID = "carol"
	require.NotEqual(t, WorkflowID(first), WorkflowID(sameVisitor))
	require.Equal(t, WorkflowID(first), WorkflowID(conversion()))
}
