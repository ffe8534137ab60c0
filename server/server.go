// Package server is a local stand-in for the add-student service the payment
// form posts to.
package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/CorrelAid/student_payment_form/inits"
	"github.com/CorrelAid/student_payment_form/middleware"
	"github.com/CorrelAid/student_payment_form/models"
	"github.com/CorrelAid/student_payment_form/monitoring"
	"github.com/CorrelAid/student_payment_form/operations"
	"github.com/CorrelAid/student_payment_form/validators"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-memdb"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const MaxBodySize = 16 << 10

type Server struct {
	db        *memdb.MemDB
	retention time.Duration
	now       func() time.Time
}

func New(db *memdb.MemDB, retention time.Duration) *Server {
	return &Server{db: db, retention: retention, now: time.Now}
}

// Router builds the gin engine with rate limiting and host whitelisting on the
// student API.
func (s *Server) Router(cfg *inits.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/student")
	api.Use(middleware.DomainWhitelistMiddleware(cfg.AllowedHosts))
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	api.POST("/add", s.addStudent)
	api.GET("/:utr", s.getStudent)

	return router
}

func (s *Server) addStudent(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodySize)

	var form models.FormRecord
	if err := c.ShouldBindJSON(&form); err != nil {
		s.respond(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validators.ValidateRecord(form); err != nil {
		var verrs validators.ValidationErrors
		msg := err.Error()
		if errors.As(err, &verrs) {
			msg = verrs.First()
		}
		s.respond(c, http.StatusBadRequest, msg)
		return
	}

	if _, err := operations.InsertStudent(s.db, form, s.now(), s.retention); err != nil {
		if errors.Is(err, operations.ErrDuplicateUTR) {
			s.respond(c, http.StatusBadRequest, "duplicate utr")
			return
		}
		log.Printf("Insert failed: utr=%s err=%v", form.UTR, err)
		s.respond(c, http.StatusInternalServerError, "Could not store student")
		return
	}

	if n, err := operations.CountStudents(s.db); err == nil {
		monitoring.SetStoredStudents(n)
	}
	s.respond(c, http.StatusCreated, "Student added")
}

func (s *Server) getStudent(c *gin.Context) {
	record, err := operations.FindStudentByUTR(s.db, c.Param("utr"))
	if err != nil {
		if errors.Is(err, operations.ErrStudentNotFound) {
			s.respond(c, http.StatusNotFound, "student not found")
			return
		}
		s.respond(c, http.StatusInternalServerError, "Could not read student")
		return
	}
	monitoring.TrackStudentRequest(http.StatusOK)
	c.JSON(http.StatusOK, record.Form)
}

func (s *Server) respond(c *gin.Context, status int, message string) {
	monitoring.TrackStudentRequest(status)
	c.JSON(status, models.Message{Message: message})
}
