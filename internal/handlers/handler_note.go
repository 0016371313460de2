package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/notes_app/internal/core/ports/services"
	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// noteHandler handles CRUD and lifecycle requests for the caller's notes.
type noteHandler struct {
	noteService portssvc.NoteSvcFacade
}

func newNoteHandler(ns portssvc.NoteSvcFacade) *noteHandler {
	return &noteHandler{noteService: ns}
}

func registerNoteRoutes(rg *gin.RouterGroup, noteService portssvc.NoteSvcFacade) {
	h := newNoteHandler(noteService)

	notes := rg.Group("/notes")
	{
		notes.POST("", h.createNote)
		notes.GET("", h.listNotes)
		notes.GET("/tags", h.listTags)
		notes.GET("/:id", h.getNote)
		notes.PUT("/:id", h.updateNote)
		notes.PATCH("/:id/archive", h.archiveNote)
		notes.PATCH("/:id/activate", h.activateNote)
		notes.DELETE("/:id", h.deleteNote)
	}
}

// createNote godoc
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Param note body dto.CreateNoteRequest true "Note"
// @Success 201 {object} dto.NoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /notes [post]
func (h *noteHandler) createNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res := h.noteService.CreateNote(c.Request.Context(), userID, req)
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.JSON(http.StatusCreated, dto.ToNoteResponse(res.Value()))
}

// listNotes godoc
// @Summary List notes
// @Description Lists the caller's notes newest first, one page at a time.
// @Tags notes
// @Produce json
// @Param status query string false "active (default) or archived"
// @Param tag query string false "Only notes carrying this tag"
// @Param limit query int false "Page size (1-100, default 20)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListNotesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /notes [get]
func (h *noteHandler) listNotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListNotesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	res := h.noteService.ListNotes(c.Request.Context(), userID, params)
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.JSON(http.StatusOK, res.Value())
}

// listTags godoc
// @Summary List tags
// @Description Distinct tags used by the caller's notes, sorted.
// @Tags notes
// @Produce json
// @Success 200 {object} dto.ListTagsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /notes/tags [get]
func (h *noteHandler) listTags(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res := h.noteService.ListTags(c.Request.Context(), userID)
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.JSON(http.StatusOK, dto.ListTagsResponse{Tags: res.Value()})
}

// getNote godoc
// @Summary Get a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} dto.NoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /notes/{id} [get]
func (h *noteHandler) getNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res := h.noteService.GetNote(c.Request.Context(), userID, c.Param("id"))
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.JSON(http.StatusOK, dto.ToNoteResponse(res.Value()))
}

// updateNote godoc
// @Summary Update a note
// @Description Partial update; omitted fields keep their value.
// @Tags notes
// @Accept json
// @Param id path string true "Note ID"
// @Param note body dto.UpdateNoteRequest true "Fields to change"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /notes/{id} [put]
func (h *noteHandler) updateNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	res := h.noteService.UpdateNote(c.Request.Context(), userID, c.Param("id"), req)
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.Status(http.StatusNoContent)
}

// archiveNote godoc
// @Summary Archive a note
// @Tags notes
// @Param id path string true "Note ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already archived"
// @Security CookieAuth
// @Router /notes/{id}/archive [patch]
func (h *noteHandler) archiveNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res := h.noteService.ArchiveNote(c.Request.Context(), userID, c.Param("id"))
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.Status(http.StatusNoContent)
}

// activateNote godoc
// @Summary Restore an archived note
// @Tags notes
// @Param id path string true "Note ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already active"
// @Security CookieAuth
// @Router /notes/{id}/activate [patch]
func (h *noteHandler) activateNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res := h.noteService.ActivateNote(c.Request.Context(), userID, c.Param("id"))
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteNote godoc
// @Summary Delete a note
// @Tags notes
// @Param id path string true "Note ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security CookieAuth
// @Router /notes/{id} [delete]
func (h *noteHandler) deleteNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	res := h.noteService.DeleteNote(c.Request.Context(), userID, c.Param("id"))
	if res.IsFailure() {
		respondFailure(c, res.Failure())
		return
	}
	c.Status(http.StatusNoContent)
}
