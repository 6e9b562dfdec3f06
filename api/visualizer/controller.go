package visualizerapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/api/auth"
	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/pathfinding"
	"github.com/beka-birhanu/vinom-pathviz/service"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Config wires a VisualizerController.
type Config struct {
	Sessions      i.SessionManager
	Tokenizer     i.Tokenizer
	TokenTTL      time.Duration
	DefaultWidth  int
	DefaultHeight int
	CellSize      int // default frame cell size
}

// VisualizerController manages visualizer sessions.
type VisualizerController struct {
	sessions      i.SessionManager
	tokenizer     i.Tokenizer
	tokenTTL      time.Duration
	defaultWidth  int
	defaultHeight int
	cellSize      int
}

// NewVisualizerController initializes a VisualizerController.
func NewVisualizerController(c Config) (*VisualizerController, error) {
	if c.Sessions == nil || c.Tokenizer == nil {
		return nil, errors.New("visualizer controller needs a session manager and a tokenizer")
	}
	if c.TokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &VisualizerController{
		sessions:      c.Sessions,
		tokenizer:     c.Tokenizer,
		tokenTTL:      c.TokenTTL,
		defaultWidth:  c.DefaultWidth,
		defaultHeight: c.DefaultHeight,
		cellSize:      c.CellSize,
	}, nil
}

// RegisterPublic registers public routes.
func (vc *VisualizerController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/sessions", vc.create)
}

// RegisterProtected registers the routes that need the session's token.
func (vc *VisualizerController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions/:" + auth.SessionParam)
	{
		sessions.GET("", vc.state)
		sessions.DELETE("", vc.close)
		sessions.GET("/maze", vc.maze)
		sessions.GET("/frame.png", vc.frame)
		sessions.GET("/stream", vc.stream)
		sessions.POST("/algorithm", vc.selectAlgorithm)
		sessions.POST("/step", vc.step)
		sessions.POST("/reset", vc.reset)
		sessions.POST("/regenerate", vc.regenerate)
		sessions.POST("/play", vc.play)
		sessions.POST("/pause", vc.pause)
		sessions.POST("/toggle", vc.toggle)
		sessions.POST("/speed", vc.speed)
	}
}

// create opens a session and hands out its control token.
func (vc *VisualizerController) create(ctx *gin.Context) {
	var request CreateSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := vc.sessions.Create(ctx, orDefault(request.Width, vc.defaultWidth), orDefault(request.Height, vc.defaultHeight), request.Algorithm)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	token, err := vc.tokenizer.Generate(map[string]interface{}{i.ClaimSessionID: s.ID().String()}, vc.tokenTTL)
	if err != nil {
		_ = vc.sessions.Close(s.ID())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while issuing session token"})
		return
	}

	ctx.JSON(http.StatusCreated, &CreateSessionResponse{
		ID:    s.ID(),
		Token: token,
		State: s.State(),
	})
}

func (vc *VisualizerController) state(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.State())
}

func (vc *VisualizerController) close(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	if err := vc.sessions.Close(id); err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (vc *VisualizerController) maze(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.Maze())
}

// frame renders the session as a PNG image.
func (vc *VisualizerController) frame(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}

	cellSize := vc.cellSize
	if raw := ctx.Query("cellSize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "cellSize must be a positive integer"})
			return
		}
		cellSize = v
	}

	var buf bytes.Buffer
	if err := s.Frame(&buf, cellSize); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

// stream pushes a state event now and after every change until the client
// leaves or the session closes.
func (vc *VisualizerController) stream(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}

	states, unsubscribe := s.Subscribe()
	defer unsubscribe()

	ctx.SSEvent("state", s.State())
	ctx.Writer.Flush()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case state, open := <-states:
			if !open {
				return false
			}
			ctx.SSEvent("state", state)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

func (vc *VisualizerController) selectAlgorithm(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}

	var request AlgorithmRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vc.respond(ctx, s, s.SelectAlgorithm(request.Algorithm))
}

func (vc *VisualizerController) step(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}

	done, err := s.Step()
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, &StepResponse{Done: done, State: s.State()})
}

func (vc *VisualizerController) reset(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}
	vc.respond(ctx, s, s.Reset())
}

func (vc *VisualizerController) regenerate(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}

	var request RegenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current := s.Maze()
	width := orDefault(request.Width, current.Width)
	height := orDefault(request.Height, current.Height)
	vc.respond(ctx, s, s.Regenerate(ctx, width, height))
}

func (vc *VisualizerController) play(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}
	vc.respond(ctx, s, s.Play())
}

func (vc *VisualizerController) pause(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}
	s.Pause()
	vc.respond(ctx, s, nil)
}

func (vc *VisualizerController) toggle(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}
	vc.respond(ctx, s, s.Toggle())
}

func (vc *VisualizerController) speed(ctx *gin.Context) {
	s, ok := vc.session(ctx)
	if !ok {
		return
	}

	var request SpeedRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vc.respond(ctx, s, s.SetSpeed(*request.Speed))
}

// respond answers a control operation with the session state or its error.
func (vc *VisualizerController) respond(ctx *gin.Context, s i.Session, err error) {
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, s.State())
}

// session resolves the session named in the route.
func (vc *VisualizerController) session(ctx *gin.Context) (i.Session, bool) {
	id, ok := sessionID(ctx)
	if !ok {
		return nil, false
	}
	s, err := vc.sessions.Get(id)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return s, true
}

func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(auth.SessionParam))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, pathfinding.ErrUnknownAlgorithm),
		errors.Is(err, service.ErrInvalidSpeed),
		errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, maze.ErrUnknownGenerator):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoEngine):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
