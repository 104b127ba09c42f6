package main

import (
	"context"

	detectorrpc "ecoscan/internal/modules/detector/adapter/out/rpc"
	"ecoscan/internal/modules/detector/domain"

	"github.com/hashicorp/go-plugin"
)

// server walks the catalog by request sequence and reports the midpoint of
// the requested confidence range.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *detectorrpc.Empty) (*detectorrpc.Metadata, error) {
	materials := make([]string, 0, len(domain.Catalog))
	for _, m := range domain.Catalog {
		materials = append(materials, m.Name)
	}
	return &detectorrpc.Metadata{Name: "catalog-detector", Version: "1.0.0", Materials: materials}, nil
}

func (s *server) Detect(_ context.Context, in *detectorrpc.DetectRequest) (*detectorrpc.DetectResponse, error) {
	m := domain.Catalog[in.Sequence%uint64(len(domain.Catalog))]
	return &detectorrpc.DetectResponse{
		Material:   m.Name,
		Confidence: in.MinConfidence + in.ConfidenceSpread/2,
		CO2Saved:   m.CO2Saved,
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: detectorrpc.HandshakeConfig,
		Plugins:         detectorrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
