package platform

import (
	"context"
	"fmt"

	"github.com/vk/qsched/internal/ctxlog"
	"resty.dev/v3"
)

// CalibrationSource fetches a Platform description from a remote calibration
// service: most real backends republish cycle time and qubit count whenever
// they recalibrate, and a long-running scheduling service should not have to
// restart to pick that up.
//
// The teacher's go.mod pulls in resty.dev/v3 transitively but never exercises
// it directly; this is the first concrete use, playing the same "stateful,
// shareable client asset" role the teacher's http_client module plays for
// its runners.
type CalibrationSource struct {
	client *resty.Client
	url    string
}

// calibrationResponse is the wire shape the calibration service returns.
type calibrationResponse struct {
	CycleTime   int `json:"cycle_time"`
	QubitNumber int `json:"qubit_number"`
}

// NewCalibrationSource builds a Source backed by an HTTP GET against url.
func NewCalibrationSource(client *resty.Client, url string) *CalibrationSource {
	if client == nil {
		client = resty.New()
	}
	return &CalibrationSource{client: client, url: url}
}

// Platform implements Source by fetching and validating the remote payload.
func (c *CalibrationSource) Platform(ctx context.Context) (Platform, error) {
	logger := ctxlog.FromContext(ctx).With("url", c.url)
	logger.Debug("fetching platform calibration")

	var payload calibrationResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(c.url)
	if err != nil {
		return Platform{}, fmt.Errorf("platform: calibration request failed: %w", err)
	}
	if resp.IsError() {
		return Platform{}, fmt.Errorf("platform: calibration service returned %s", resp.Status())
	}

	p := Platform{CycleTime: payload.CycleTime, QubitNumber: payload.QubitNumber}
	if err := p.Validate(); err != nil {
		return Platform{}, fmt.Errorf("platform: calibration payload invalid: %w", err)
	}
	logger.Info("platform calibration loaded", "cycle_time", p.CycleTime, "qubit_number", p.QubitNumber)
	return p, nil
}

// Close releases the underlying HTTP client's idle connections, mirroring
// the teacher's destroyHttpClient asset-lifecycle pattern.
func (c *CalibrationSource) Close() error {
	c.client.Close()
	return nil
}
