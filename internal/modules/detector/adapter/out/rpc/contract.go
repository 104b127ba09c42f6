package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "detector"
	serviceName       = "ecoscan.detector.v1.Detector"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodDetect      = "/" + serviceName + "/Detect"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ECOSCAN_DETECTOR_PLUGIN",
	MagicCookieValue: "ecoscan",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Materials []string `json:"materials"`
}

// DetectRequest carries the host's confidence range and a per-host call
// counter, since plugins are relaunched for every call.
type DetectRequest struct {
	Sequence         uint64  `json:"sequence"`
	MinConfidence    float64 `json:"min_confidence"`
	ConfidenceSpread float64 `json:"confidence_spread"`
}

type DetectResponse struct {
	Material   string  `json:"material"`
	Confidence float64 `json:"confidence"`
	CO2Saved   float64 `json:"co2_saved"`
}

type DetectorServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Detect(ctx context.Context, in *DetectRequest) (*DetectResponse, error)
}

type DetectorClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Detect(ctx context.Context, in *DetectRequest) (*DetectResponse, error)
}

type detectorClient struct {
	conn *grpc.ClientConn
}

func NewDetectorClient(conn *grpc.ClientConn) DetectorClient {
	return &detectorClient{conn: conn}
}

func (c *detectorClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *detectorClient) Detect(ctx context.Context, in *DetectRequest) (*DetectResponse, error) {
	out := &DetectResponse{}
	if err := c.conn.Invoke(ctx, methodDetect, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterDetectorServer(server grpc.ServiceRegistrar, impl DetectorServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*DetectorServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Detect",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &DetectRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Detect(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodDetect}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*DetectRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Detect(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "ecoscan/detector/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl DetectorServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterDetectorServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewDetectorClient(conn), nil
}

func PluginMap(impl DetectorServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
