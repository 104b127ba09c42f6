package out

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync/atomic"
	"time"

	detectorrpc "ecoscan/internal/modules/detector/adapter/out/rpc"
	"ecoscan/internal/modules/detector/domain"
	detectorout "ecoscan/internal/modules/detector/port/out"
	"ecoscan/internal/platform/logging"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches the plugin binary for each call and kills it afterwards.
type GRPCHost struct {
	logger   *slog.Logger
	sequence atomic.Uint64
}

func NewGRPCHost(logger *slog.Logger) detectorout.Host {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GRPCHost{logger: logger.With("component", "detector-plugin")}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Materials: meta.Materials}, nil
}

func (h *GRPCHost) Detect(ctx context.Context, manifest domain.Manifest, confidence detectorout.ConfidenceRange) (domain.Reading, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Reading{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := client.Detect(callCtx, &detectorrpc.DetectRequest{
		Sequence:         h.sequence.Add(1) - 1,
		MinConfidence:    confidence.Min,
		ConfidenceSpread: confidence.Spread,
	})
	if err != nil {
		return domain.Reading{}, fmt.Errorf("detect: %w", err)
	}
	h.logger.Debug("plugin detection", "plugin", manifest.Name, "material", response.Material)
	return domain.Reading{
		Material:   response.Material,
		Confidence: response.Confidence,
		CO2Saved:   response.CO2Saved,
	}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (detectorrpc.DetectorClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  detectorrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          detectorrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(detectorrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(detectorrpc.DetectorClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
