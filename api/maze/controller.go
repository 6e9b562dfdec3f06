package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/service"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController serves generated and saved mazes.
type MazeController struct {
	mazes         i.MazeProvider
	defaultWidth  int
	defaultHeight int
}

// NewMazeController initializes a MazeController. Requests without
// dimensions get defaultWidth x defaultHeight mazes.
func NewMazeController(mp i.MazeProvider, defaultWidth, defaultHeight int) (*MazeController, error) {
	if mp == nil {
		return nil, errors.New("maze controller needs a maze provider")
	}
	return &MazeController{
		mazes:         mp,
		defaultWidth:  defaultWidth,
		defaultHeight: defaultHeight,
	}, nil
}

// RegisterRoot registers the generation route at the path maze clients call.
func (mc *MazeController) RegisterRoot(route gin.IRoutes) {
	route.POST("/generate-maze", mc.generateMaze)
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.POST("/saved", mc.save)
		mazes.GET("/saved/:mazeID", mc.saved)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {}

// generate handles maze generation with the full set of options.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, source, err := mc.mazes.Generate(ctx, i.MazeSpec{
		Width:     mc.orDefault(request.Width, mc.defaultWidth),
		Height:    mc.orDefault(request.Height, mc.defaultHeight),
		Generator: maze.Generator(request.Generator),
		Seed:      request.Seed,
	})
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(m, source))
}

// generateMaze answers with the bare maze, for clients that only know the
// width and height fields.
func (mc *MazeController) generateMaze(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// the local generators only, so a remote pointed at this route cannot loop
	m, _, err := mc.mazes.Generate(ctx, i.MazeSpec{
		Width:     mc.orDefault(request.Width, mc.defaultWidth),
		Height:    mc.orDefault(request.Height, mc.defaultHeight),
		Generator: maze.GeneratorBacktracker,
	})
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, m)
}

// save stores a maze posted in the wire format.
func (mc *MazeController) save(ctx *gin.Context) {
	var m maze.Maze
	if err := ctx.ShouldBindJSON(&m); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := mc.mazes.Save(ctx, &m)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, &SavedResponse{ID: id})
}

// saved retrieves a stored maze.
func (mc *MazeController) saved(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("mazeID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	m, err := mc.mazes.ByID(ctx, id)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, m)
}

func (mc *MazeController) orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, maze.ErrInvalidMaze),
		errors.Is(err, maze.ErrUnknownGenerator):
		return http.StatusBadRequest
	case errors.Is(err, i.ErrMazeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
