package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mistakeknot/shadcn-mcp/internal/framework"
	"github.com/mistakeknot/shadcn-mcp/internal/registry"
)

const tracerName = "github.com/mistakeknot/shadcn-mcp/internal/resources"

// ErrUnknownResource is returned for URIs absent from the catalog.
var ErrUnknownResource = errors.New("unknown resource")

// Envelope is the serialized content returned for every resource read.
type Envelope struct {
	Content  string
	MIMEType string
}

// Failure is the structured payload served in place of a failed result.
type Failure struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Result is either a value to serialize or a Failure.
type Result struct {
	Value   any
	Failure *Failure
}

func failed(label string, err error) Result {
	return Result{Failure: &Failure{Error: label, Message: err.Error()}}
}

// Handler produces a resource result. Handlers never return Go errors.
type Handler func(ctx context.Context) Result

// Config exposes the resolved framework selection.
type Config interface {
	Framework() framework.Framework
	UILibrary() framework.UILibrary
}

// Loader returns the backend client for a framework selection.
type Loader func(framework.Framework, framework.UILibrary) (registry.Client, error)

type route struct {
	handler Handler
	failure string
}

// Dispatcher maps catalog URIs to handlers.
type Dispatcher struct {
	config Config
	load   Loader
	logger logrus.FieldLogger
	tracer trace.Tracer
	routes map[string]route
}

// NewDispatcher wires the catalog handlers to config and load.
func NewDispatcher(config Config, load Loader, logger logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{
		config: config,
		load:   load,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	d.routes = map[string]route{
		URIComponents:    {handler: d.components, failure: "Failed to fetch components list"},
		URIThemeMetadata: {handler: d.themeMetadata, failure: "Failed to fetch theme metadata"},
	}
	return d
}

// Read runs the handler for uri. A panicking handler yields a Failure.
func (d *Dispatcher) Read(ctx context.Context, uri string) (result Result, err error) {
	ctx, span := d.tracer.Start(ctx, "resources.Read",
		trace.WithAttributes(attribute.String("mcp.resource.uri", uri)))
	defer span.End()

	r, ok := d.routes[uri]
	if !ok {
		span.SetStatus(codes.Error, ErrUnknownResource.Error())
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownResource, uri)
	}

	defer func() {
		if p := recover(); p != nil {
			d.logger.WithField("resource", uri).Errorf("resource handler panicked: %v", p)
			result = failed(r.failure, fmt.Errorf("%v", p))
		}
		if result.Failure != nil {
			span.SetStatus(codes.Error, result.Failure.Message)
		}
	}()

	return r.handler(ctx), nil
}

// Resolve reads uri and serializes the result as indented JSON. The only
// error is ErrUnknownResource; failures are carried in the envelope.
func (d *Dispatcher) Resolve(ctx context.Context, uri string) (Envelope, error) {
	result, err := d.Read(ctx, uri)
	if err != nil {
		return Envelope{}, err
	}
	return encode(result), nil
}

func encode(result Result) Envelope {
	var v any = result.Value
	if result.Failure != nil {
		v = result.Failure
	}
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Failure always marshals.
		encoded, _ = json.MarshalIndent(Failure{Error: "Failed to encode resource", Message: err.Error()}, "", "  ")
	}
	return Envelope{Content: string(encoded), MIMEType: MIMEJSON}
}

func (d *Dispatcher) components(ctx context.Context) Result {
	names, err := d.fetchComponents(ctx)
	if err != nil {
		d.logger.WithFields(logrus.Fields{
			"resource": "get_components",
			"error":    err.Error(),
		}).Error("Error fetching components list")
		return failed("Failed to fetch components list", err)
	}
	return Result{Value: names}
}

func (d *Dispatcher) fetchComponents(ctx context.Context) ([]string, error) {
	f, lib := d.config.Framework(), d.config.UILibrary()
	client, err := d.load(f, lib)
	if err != nil {
		return nil, fmt.Errorf("load %s client: %w", f, err)
	}
	names, err := client.AvailableComponents(ctx)
	if err != nil {
		return nil, err
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	slices.Sort(sorted)
	return sorted, nil
}
