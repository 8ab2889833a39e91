package ipc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"resty.dev/v3"
)

func newClient() *resty.Client {
	path := SocketPath()

	client := resty.NewWithClient(&http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		},
	})

	client.SetBaseURL("http://crossfade")
	client.SetTimeout(5 * time.Second)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "crossfade")
	return client
}

func SendCommand(cmd Command) (*Response, error) {
	client := newClient()
	defer client.Close()

	result := Response{}
	response, err := client.R().SetBody(cmd).SetResult(&result).Post("/command")
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error sending command: %s", response.Status())
	}
	return &result, nil
}

// SendStatus asks a running instance for its status. An error means nothing
// is listening on the socket.
func SendStatus() (*StatusResponse, error) {
	client := newClient()
	defer client.Close()

	result := StatusResponse{}
	response, err := client.R().SetResult(&result).Get("/status")
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error requesting status: %s", response.Status())
	}
	return &result, nil
}

func SendStop() error {
	client := newClient()
	defer client.Close()

	response, err := client.R().Post("/stop")
	if err != nil {
		return err
	}
	if response.StatusCode() != http.StatusOK {
		return fmt.Errorf("error sending stop: %s", response.Status())
	}
	return nil
}
