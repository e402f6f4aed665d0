package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/courseplatform-api/pkg/learningpb"
)

type CourseHandler struct {
	base
}

func NewCourseHandler(client learningpb.LearningServiceClient, timeout time.Duration) *CourseHandler {
	return &CourseHandler{base{client: client, timeout: timeout}}
}

// GET /api/v1/courses?category=
func (h *CourseHandler) List(c *gin.Context) {
	ctx, cancel := h.rpcContext(c)
	defer cancel()

	res, err := h.client.ListCourses(ctx, &learningpb.ListCoursesRequest{Category: c.Query("category")})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respond(c, http.StatusOK, "Courses retrieved successfully", res.Courses)
}

// GET /api/v1/courses/:courseId
func (h *CourseHandler) GetOne(c *gin.Context) {
	ctx, cancel := h.rpcContext(c)
	defer cancel()

	res, err := h.client.GetCourse(ctx, &learningpb.GetCourseRequest{CourseId: c.Param("courseId")})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respond(c, http.StatusOK, "Course retrieved successfully", res.Course)
}

// PUT /api/v1/courses/:courseId/sections/:sectionId/chapters/:chapterId/video
func (h *CourseHandler) AttachVideo(c *gin.Context) {
	var req struct {
		VideoURL string `json:"videoUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	ctx, cancel := h.rpcContext(c)
	defer cancel()

	res, err := h.client.AttachChapterVideo(ctx, &learningpb.AttachChapterVideoRequest{
		CallerId:  callerID(c),
		CourseId:  c.Param("courseId"),
		SectionId: c.Param("sectionId"),
		ChapterId: c.Param("chapterId"),
		VideoUrl:  req.VideoURL,
	})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respond(c, http.StatusOK, "Chapter video updated", res.Course)
}
