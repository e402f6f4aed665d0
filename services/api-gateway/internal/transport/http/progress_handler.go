package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/courseplatform-api/pkg/learningpb"
)

type ProgressHandler struct {
	base
}

func NewProgressHandler(client learningpb.LearningServiceClient, timeout time.Duration) *ProgressHandler {
	return &ProgressHandler{base{client: client, timeout: timeout}}
}

// GET /api/v1/users/course-progress/:userId/enrolled-courses
func (h *ProgressHandler) EnrolledCourses(c *gin.Context) {
	ctx, cancel := h.rpcContext(c)
	defer cancel()

	res, err := h.client.GetEnrolledCourses(ctx, &learningpb.GetEnrolledCoursesRequest{
		CallerId: callerID(c),
		UserId:   c.Param("userId"),
	})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respond(c, http.StatusOK, "Enrolled courses retrieved successfully", res.Courses)
}

// GET /api/v1/users/course-progress/:userId/courses/:courseId
func (h *ProgressHandler) Get(c *gin.Context) {
	ctx, cancel := h.rpcContext(c)
	defer cancel()

	res, err := h.client.GetProgress(ctx, &learningpb.GetProgressRequest{
		CallerId: callerID(c),
		UserId:   c.Param("userId"),
		CourseId: c.Param("courseId"),
	})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respond(c, http.StatusOK, "Course progress retrieved successfully", res.Progress)
}

// PUT /api/v1/users/course-progress/:userId/courses/:courseId
// overallProgress из тела игнорируется, его считает сервер.
func (h *ProgressHandler) Update(c *gin.Context) {
	var req struct {
		Sections []learningpb.SectionProgress `json:"sections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	ctx, cancel := h.rpcContext(c)
	defer cancel()

	res, err := h.client.UpdateProgress(ctx, &learningpb.UpdateProgressRequest{
		CallerId: callerID(c),
		UserId:   c.Param("userId"),
		CourseId: c.Param("courseId"),
		Sections: req.Sections,
	})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respond(c, http.StatusOK, "User course progress updated successfully", res.Progress)
}
