// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package telemetry

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchevents"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchevents/types"
	"github.com/hashicorp/go-zipcrack"
	"github.com/pkg/errors"
)

// DetailType is the detail type of published run events.
const DetailType = "Verification Run"

// EventsAPI is the part of the CloudWatch Events client used to publish runs.
type EventsAPI interface {
	PutEvents(ctx context.Context, params *cloudwatchevents.PutEventsInput, optFns ...func(*cloudwatchevents.Options)) (*cloudwatchevents.PutEventsOutput, error)
}

// NewCloudWatchClient creates a CloudWatch Events client from the default AWS
// configuration chain (environment, shared config, instance role).
func NewCloudWatchClient(ctx context.Context) (*cloudwatchevents.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load aws configuration")
	}
	return cloudwatchevents.NewFromConfig(cfg), nil
}

// logger is the logging interface used by the hooks of this package.
type logger interface {
	Warn(msg string, keysAndValues ...interface{})
}

// NewCloudWatchHook returns a [zipcrack.TelemetryHook] that publishes the
// telemetry data of every run as event with the given source to bus. An empty
// bus publishes to the default event bus. Publishing errors are logged, they
// never fail the run.
func NewCloudWatchHook(client EventsAPI, source, bus string, log logger) zipcrack.TelemetryHook {
	return func(ctx context.Context, td *zipcrack.TelemetryData) {
		if err := publish(ctx, client, source, bus, td); err != nil {
			log.Warn("cannot publish telemetry event", "run_id", td.RunID, "error", err)
		}
	}
}

// publish sends td as a single event.
func publish(ctx context.Context, client EventsAPI, source, bus string, td *zipcrack.TelemetryData) error {
	detail, err := json.Marshal(td)
	if err != nil {
		return errors.Wrap(err, "cannot marshal telemetry data")
	}

	entry := types.PutEventsRequestEntry{
		Source:     aws.String(source),
		DetailType: aws.String(DetailType),
		Detail:     aws.String(string(detail)),
		Resources:  []string{},
	}
	if len(bus) > 0 {
		entry.EventBusName = aws.String(bus)
	}

	out, err := client.PutEvents(ctx, &cloudwatchevents.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{entry},
	})
	if err != nil {
		return errors.Wrap(err, "cannot put event")
	}
	for _, e := range out.Entries {
		if e.ErrorCode != nil {
			return errors.Errorf("event rejected: %s: %s", aws.ToString(e.ErrorCode), aws.ToString(e.ErrorMessage))
		}
	}
	return nil
}
