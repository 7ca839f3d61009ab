// internal/dashboard/controller.go
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Status messages. MsgConnectFailed and the placeholder text are part of the
// UI contract and covered by tests.
const (
	MsgMissingCredentials = "Please enter both username and password."
	MsgLoggingIn          = "Logging in and fetching data... This may take a minute."
	MsgLoginSuccess       = "Login successful. Activities updated."
	MsgFetching           = "Fetching data..."
	MsgConnectFailed      = "Failed to connect to the server."
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Status is the state of one status region.
type Status struct {
	Text  string
	Level Level
}

// Controller drives the two dashboard flows. The login and refresh flows are
// independent: each has its own status region and busy flag, and neither
// blocks the other. They do share the rendered table, which is guarded by a
// generation counter so a slow, stale response cannot overwrite the render
// of a flow that started after it.
type Controller struct {
	api *Client

	mu          sync.Mutex
	loginBusy   bool
	refreshBusy bool
	loginStatus Status
	dataStatus  Status
	table       string

	nextGen     uint64
	renderedGen uint64
}

func NewController(api *Client) *Controller {
	return &Controller{
		api:   api,
		table: noActivitiesHTML,
	}
}

// HandleLogin validates the credentials, posts them to the backend and
// renders the result. An empty username or password is reported locally
// without any request. The busy flag is cleared on every path.
func (c *Controller) HandleLogin(ctx context.Context, username, password string) {
	if username == "" || password == "" {
		c.setLoginStatus(Status{Text: MsgMissingCredentials, Level: LevelError})
		return
	}

	c.mu.Lock()
	if c.loginBusy {
		c.mu.Unlock()
		return
	}
	c.loginBusy = true
	c.loginStatus = Status{Text: MsgLoggingIn, Level: LevelInfo}
	c.nextGen++
	gen := c.nextGen
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loginBusy = false
		c.mu.Unlock()
	}()

	activities, err := c.api.LoginAndFetch(ctx, username, password)
	if err != nil {
		c.setLoginStatus(failureStatus(err))
		return
	}

	c.setLoginStatus(Status{Text: MsgLoginSuccess, Level: LevelSuccess})
	c.applyRender(gen, activities)
}

// HandleRefresh reloads the already-synced activities from the read-only
// endpoint.
func (c *Controller) HandleRefresh(ctx context.Context) {
	c.mu.Lock()
	if c.refreshBusy {
		c.mu.Unlock()
		return
	}
	c.refreshBusy = true
	c.dataStatus = Status{Text: MsgFetching, Level: LevelInfo}
	c.nextGen++
	gen := c.nextGen
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.refreshBusy = false
		c.mu.Unlock()
	}()

	activities, err := c.api.FetchData(ctx)
	if err != nil {
		c.setDataStatus(failureStatus(err))
		return
	}

	c.applyRender(gen, activities)
}

// applyRender renders the activities into the shared table unless a flow
// with a newer generation already rendered.
func (c *Controller) applyRender(gen uint64, activities []Activity) {
	table, err := RenderActivities(activities)
	if err != nil {
		log.Printf("dashboard: render failed: %v", err)
		c.setDataStatus(Status{Text: "Failed to render activities.", Level: LevelError})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < c.renderedGen {
		// A newer flow already rendered; this response is stale.
		return
	}
	c.renderedGen = gen
	c.table = table
	if len(activities) > 0 {
		c.dataStatus = Status{
			Text:  fmt.Sprintf("Loaded %d activities.", len(activities)),
			Level: LevelSuccess,
		}
	} else {
		c.dataStatus = Status{Text: "No activities found.", Level: LevelInfo}
	}
}

// failureStatus maps a client error onto a user-facing status: server text
// for a reported failure, a generic connectivity message otherwise.
func failureStatus(err error) Status {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return Status{Text: "Error: " + apiErr.Message, Level: LevelError}
	}
	log.Printf("dashboard: request failed: %v", err)
	return Status{Text: MsgConnectFailed, Level: LevelError}
}

func (c *Controller) setLoginStatus(s Status) {
	c.mu.Lock()
	c.loginStatus = s
	c.mu.Unlock()
}

func (c *Controller) setDataStatus(s Status) {
	c.mu.Lock()
	c.dataStatus = s
	c.mu.Unlock()
}

func (c *Controller) LoginStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginStatus
}

func (c *Controller) DataStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dataStatus
}

// Table returns the current rendered activities table HTML.
func (c *Controller) Table() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table
}

func (c *Controller) LoginBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginBusy
}

func (c *Controller) RefreshBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshBusy
}
