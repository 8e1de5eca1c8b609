// Reader is a testing facility to read the output of a http reporter.

package reporter

import (
	"io"
	"net/http"
	"strconv"
)

type HttpReader struct {
	serverIP   string // listen ip
	serverPort string // listen port
}

func NewHttpReader(serverIP string, serverPort string) *HttpReader {
	return &HttpReader{
		serverIP:   serverIP,
		serverPort: serverPort,
	}
}

// Fetch a route and hand back the raw body, whatever the status code.
func (hr *HttpReader) fetch(route string) (string, error) {
	url := "http://" + hr.serverIP + ":" + hr.serverPort + route

	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// Read the response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// Convert the body to a string
	return string(body), nil
}

func (hr *HttpReader) GetStatus() (string, error) {
	return hr.fetch(ROUTE_STATUS)
}

func (hr *HttpReader) GetDeposit(requestID string) (string, error) {
	return hr.fetch(ROUTE_DEPOSIT + "?request_id=" + requestID)
}

func (hr *HttpReader) GetDeposits(limit int) (string, error) {
	return hr.fetch(ROUTE_DEPOSITS + "?limit=" + strconv.Itoa(limit))
}

func (hr *HttpReader) GetBurn(burnID string) (string, error) {
	return hr.fetch(ROUTE_BURN + "?burn_id=" + burnID)
}

func (hr *HttpReader) GetBurns(limit int) (string, error) {
	return hr.fetch(ROUTE_BURNS + "?limit=" + strconv.Itoa(limit))
}
