// Package mobile exports shims for gomobile use
package mobile

import (
	"context"
	"encoding/json"
	"net/http"

	supereasy "github.com/supereasy-dev/super-easy-in-app-purchase"
	"github.com/supereasy-dev/super-easy-in-app-purchase/channel"
)

// Result is returned from Invoke
//
//	Output is the serialized JSON envelope
//	Status is a HTTP status return (200=OK anything else fail)
type Result struct {
	Output string
	Status int
}

// Invoke has an interface optimised for gomobile, in particular
// the function signature is valid under gobind rules.
//
// https://pkg.go.dev/golang.org/x/mobile/cmd/gobind#hdr-Type_restrictions
func Invoke(channelName string, input string) *Result {
	reg, err := supereasy.DefaultRegistry()
	if err != nil {
		return failure(channel.NewInternalError(err.Error()))
	}
	return invoke(context.Background(), reg, channelName, input)
}

// PlatformVersion returns "<Label> <Version>" for the running OS.
func PlatformVersion() (string, error) {
	return supereasy.PlatformVersion(context.Background())
}

func invoke(ctx context.Context, reg *channel.Registry, channelName, input string) *Result {
	output, err := reg.Invoke(ctx, channelName, []byte(input))
	if err != nil {
		return failure(channel.NewInternalError(err.Error()))
	}
	return &Result{Output: string(output), Status: statusOf(output)}
}

func failure(resp channel.ErrorResponse) *Result {
	return &Result{Output: string(resp.ToJSON()), Status: resp.Status}
}

// statusOf reads the status of an error envelope; success envelopes are 200.
func statusOf(output []byte) int {
	var env struct {
		Error *channel.ErrorResponse `json:"error"`
	}
	if err := json.Unmarshal(output, &env); err != nil {
		return http.StatusInternalServerError
	}
	if env.Error != nil {
		return env.Error.Status
	}
	return http.StatusOK
}
