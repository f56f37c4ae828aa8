package fleet

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
)

type stubAPI struct {
	describeOut *ec2.DescribeInstancesOutput
	startOut    *ec2.StartInstancesOutput
	stopOut     *ec2.StopInstancesOutput
	err         error

	startedIDs []string
	stoppedIDs []string
}

func (s *stubAPI) DescribeInstances(context.Context, *ec2.DescribeInstancesInput, ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return s.describeOut, s.err
}

func (s *stubAPI) StartInstances(_ context.Context, in *ec2.StartInstancesInput, _ ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	s.startedIDs = in.InstanceIds
	return s.startOut, s.err
}

func (s *stubAPI) StopInstances(_ context.Context, in *ec2.StopInstancesInput, _ ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
	s.stoppedIDs = in.InstanceIds
	return s.stopOut, s.err
}

func strRef(s string) *string { return &s }

func TestStatus(t *testing.T) {
	api := &stubAPI{
		describeOut: &ec2.DescribeInstancesOutput{
			Reservations: []types.Reservation{
				{Instances: []types.Instance{
					{InstanceId: strRef("i-1"), State: &types.InstanceState{Name: types.InstanceStateNameRunning}},
					{InstanceId: strRef("i-2"), State: &types.InstanceState{Name: types.InstanceStateNameStopped}},
				}},
			},
		},
	}
	m := &Manager{Client: api, NameTag: "twitter-bot"}
	statuses, err := m.Status(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("statuses=%+v", statuses)
	}
	if statuses[0].InstanceID != "i-1" || statuses[0].State != "running" {
		t.Fatalf("statuses[0]=%+v", statuses[0])
	}
	if statuses[1].State != "stopped" {
		t.Fatalf("statuses[1]=%+v", statuses[1])
	}
}

func TestManage_Start(t *testing.T) {
	api := &stubAPI{
		startOut: &ec2.StartInstancesOutput{
			StartingInstances: []types.InstanceStateChange{
				{InstanceId: strRef("i-1")},
			},
		},
	}
	m := &Manager{Client: api}
	result := m.Manage(context.Background(), "start", []string{"i-1"})
	if !result.Success {
		t.Fatalf("result=%+v", result)
	}
	if len(result.InstanceStates) != 1 {
		t.Fatalf("states=%+v", result.InstanceStates)
	}
	if len(api.startedIDs) != 1 || api.startedIDs[0] != "i-1" {
		t.Fatalf("startedIDs=%v", api.startedIDs)
	}
}

func TestManage_UnknownAction(t *testing.T) {
	m := &Manager{Client: &stubAPI{}}
	result := m.Manage(context.Background(), "reboot", []string{"i-1"})
	if result.Success {
		t.Fatalf("result=%+v", result)
	}
	if result.ErrorCode != "InvalidAction" {
		t.Fatalf("code=%q", result.ErrorCode)
	}
}

func TestManage_NoIDs(t *testing.T) {
	m := &Manager{Client: &stubAPI{}}
	result := m.Manage(context.Background(), "stop", nil)
	if result.Success || result.ErrorCode != "NoInstanceFound" {
		t.Fatalf("result=%+v", result)
	}
}

func TestManage_APIErrorBecomesPayload(t *testing.T) {
	api := &stubAPI{
		err: &smithy.GenericAPIError{
			Code:    "IncorrectInstanceState",
			Message: "instance is not in a state from which it can be started",
		},
	}
	m := &Manager{Client: api}
	result := m.Manage(context.Background(), "start", []string{"i-1"})
	if result.Success {
		t.Fatalf("result=%+v", result)
	}
	if result.ErrorCode != "IncorrectInstanceState" {
		t.Fatalf("code=%q", result.ErrorCode)
	}
	if result.ErrorMessage == "" {
		t.Fatalf("empty error message")
	}
}
