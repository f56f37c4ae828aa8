// Package fleet controls the EC2 instances running the scraping bots. The
// dashboard only ever starts, stops and inspects instances carrying the
// configured Name tag; it never creates or terminates them.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

const (
	ActionStart = "start"
	ActionStop  = "stop"
)

// API is the slice of the EC2 client the manager uses.
type API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

// Controller is what the HTTP layer needs from the fleet.
type Controller interface {
	Status(ctx context.Context) ([]InstanceStatus, error)
	Manage(ctx context.Context, action string, ids []string) ManageResult
}

type InstanceStatus struct {
	InstanceID string `json:"instanceId"`
	State      string `json:"state"`
}

// ManageResult reports a start/stop attempt. Operational failures such as an
// unknown action or a malformed instance id are carried in the payload, not
// as an error, so the dashboard can render them.
type ManageResult struct {
	Success        bool                        `json:"success"`
	InstanceStates []types.InstanceStateChange `json:"instanceStates"`
	ErrorMessage   string                      `json:"errorMessage,omitempty"`
	ErrorCode      string                      `json:"errorCode,omitempty"`
}

type Manager struct {
	Client  API
	NameTag string
	Logger  *zap.Logger
}

// NewManager builds a manager against the real EC2 API using the default AWS
// credential chain.
func NewManager(ctx context.Context, region, nameTag string, logger *zap.Logger) (*Manager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Manager{
		Client:  ec2.NewFromConfig(cfg),
		NameTag: nameTag,
		Logger:  logger,
	}, nil
}

// Status lists the fleet instances and their current lifecycle state.
func (m *Manager) Status(ctx context.Context) ([]InstanceStatus, error) {
	out, err := m.Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: strPtr("tag:Name"), Values: []string{m.NameTag}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("describe instances: %w", err)
	}
	statuses := make([]InstanceStatus, 0)
	for _, res := range out.Reservations {
		for _, inst := range res.Instances {
			st := InstanceStatus{}
			if inst.InstanceId != nil {
				st.InstanceID = *inst.InstanceId
			}
			if inst.State != nil {
				st.State = string(inst.State.Name)
			}
			statuses = append(statuses, st)
		}
	}
	return statuses, nil
}

// Manage starts or stops the given instances. An empty id list or an unknown
// action yields a benign unsuccessful result.
func (m *Manager) Manage(ctx context.Context, action string, ids []string) ManageResult {
	if len(ids) == 0 {
		return ManageResult{
			ErrorMessage: "no instance ids supplied",
			ErrorCode:    "NoInstanceFound",
		}
	}
	var (
		changes []types.InstanceStateChange
		err     error
	)
	switch strings.ToLower(action) {
	case ActionStart:
		var out *ec2.StartInstancesOutput
		out, err = m.Client.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: ids})
		if out != nil {
			changes = out.StartingInstances
		}
	case ActionStop:
		var out *ec2.StopInstancesOutput
		out, err = m.Client.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: ids})
		if out != nil {
			changes = out.StoppingInstances
		}
	default:
		return ManageResult{
			ErrorMessage: fmt.Sprintf("unknown action %q", action),
			ErrorCode:    "InvalidAction",
		}
	}
	if err != nil {
		if m.Logger != nil {
			m.Logger.Warn("fleet manage failed",
				zap.String("action", action),
				zap.Strings("ids", ids),
				zap.Error(err))
		}
		result := ManageResult{ErrorMessage: err.Error()}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			result.ErrorCode = apiErr.ErrorCode()
			result.ErrorMessage = apiErr.ErrorMessage()
		}
		return result
	}
	return ManageResult{Success: true, InstanceStates: changes}
}

func strPtr(s string) *string {
	return &s
}
