// This is a http type of reporter.
// It fetches data from the internal state manager
// and publishes on the http routes.

package reporter

import (
	"net/http"
	"strconv"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/tempo-io/bridge-go/state"
)

const (
	ROUTE_STATUS   = "/status"
	ROUTE_DEPOSIT  = "/deposit"
	ROUTE_DEPOSITS = "/deposits"
	ROUTE_BURN     = "/burn"
	ROUTE_BURNS    = "/burns"
)

// Default number of rows returned by the list routes when ?limit= is absent.
const defaultListLimit = "50"

type HttpReporter struct {
	serverIP   string // listen ip
	serverPort string // listen port

	// upstream data source
	statedb *state.Manager
}

func NewHttpReporter(serverIP string, serverPort string, statedb *state.Manager) *HttpReporter {
	return &HttpReporter{
		serverIP:   serverIP,
		serverPort: serverPort,
		statedb:    statedb,
	}
}

// Hook up routes & handlers
func (h *HttpReporter) SetupRouter() *gin.Engine {
	router := gin.Default()

	// Define routes & handlers
	router.GET(ROUTE_STATUS, h.Status)
	router.GET(ROUTE_DEPOSIT, h.Deposit)
	router.GET(ROUTE_DEPOSITS, h.Deposits)
	router.GET(ROUTE_BURN, h.Burn)
	router.GET(ROUTE_BURNS, h.Burns)

	return router
}

// Hook up router & ip:port
func (h *HttpReporter) Run() {
	router := h.SetupRouter()
	address := h.serverIP + ":" + h.serverPort
	if err := router.Run(address); err != nil {
		panic(err)
	}
}

// Row counters plus the tempo watermark, for dashboards.
func (h *HttpReporter) Status(c *gin.Context) {
	stats, err := h.statedb.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// Fetch a single signed deposit by its request id.
// Publish on the route
func (h *HttpReporter) Deposit(c *gin.Context) {
	requestID := c.Query("request_id")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request_id must be provided"})
		return
	}

	d, ok, err := h.statedb.GetSignedDeposit(ethcommon.HexToHash(requestID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No deposit found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

// Fetch the most recent signed deposits. ?limit=-1 returns all of them.
func (h *HttpReporter) Deposits(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", defaultListLimit))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	deposits, err := h.statedb.ListSignedDeposits(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": deposits})
}

// Fetch a single processed burn by its burn id.
func (h *HttpReporter) Burn(c *gin.Context) {
	burnID := c.Query("burn_id")
	if burnID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "burn_id must be provided"})
		return
	}

	b, ok, err := h.statedb.GetProcessedBurn(ethcommon.HexToHash(burnID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No burn found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

// Fetch the most recent processed burns. ?limit=-1 returns all of them.
func (h *HttpReporter) Burns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", defaultListLimit))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	burns, err := h.statedb.ListProcessedBurns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": burns})
}
