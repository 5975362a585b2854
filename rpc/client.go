package rpc

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/powerman/rpc-codec/jsonrpc2"
	"github.com/ybbus/jsonrpc"
	"golang.org/x/net/websocket"
)

// Client calls methods of the feeledger service. name is the method name
// without the service prefix.
type Client interface {
	Call(name string, args interface{}, result interface{}) error
}

// NewClient returns a websocket client for urls ending in /ws and an HTTP
// client otherwise.
func NewClient(url string) (Client, error) {
	if strings.HasSuffix(url, "/ws") {
		return newWSClient(url)
	}
	return newHTTPClient(url), nil
}

func methodName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return ServiceName + "." + name
}

//
// --------------------- HTTP client -------------------------
//

type HTTPClient struct {
	*jsonrpc.RPCClient
}

func newHTTPClient(url string) HTTPClient {
	return HTTPClient{jsonrpc.NewRPCClient(url)}
}

func (c HTTPClient) Call(name string, args interface{}, result interface{}) error {
	res, err := c.RPCClient.Call(methodName(name), args)
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return res.GetObject(result)
}

//
// --------------------- WebSocket client -------------------------
//

type WSClient struct {
	*jsonrpc2.Client
	ws  *websocket.Conn
	url string
}

func newWSClient(url string) (*WSClient, error) {
	ws, err := websocket.Dial(url, "", url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %v", url)
	}
	return &WSClient{
		url:    url,
		ws:     ws,
		Client: jsonrpc2.NewClient(ws),
	}, nil
}

func (c *WSClient) Call(name string, args interface{}, result interface{}) error {
	err := c.Client.Call(methodName(name), args, result)
	if err != nil && err.Error() == "connection is shut down" {
		c.ws, err = websocket.Dial(c.url, "", c.url)
		if err != nil {
			return err
		}
		c.Client = jsonrpc2.NewClient(c.ws)
		return c.Client.Call(methodName(name), args, result)
	}
	return err
}
