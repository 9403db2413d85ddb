package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/service"
	"github.com/pageza/resep-nusantara/internal/types"
)

// uploadSlack covers the multipart framing around the avatar file
const uploadSlack = 64 * 1024

// Home lists recipes for the filters in the query string
func (h *Handler) Home(c *gin.Context) {
	q := bindQuery(c)

	var list service.RecipeList
	if c.Query("refetch") == "1" {
		list = h.queries.Refetch(c.Request.Context(), q)
	} else {
		list = h.queries.GetRecipes(c.Request.Context(), q)
	}

	c.HTML(http.StatusOK, "home.html", homePage{
		layout:     h.layout(""),
		Query:      q,
		List:       list,
		Favorited:  h.favoritedSet(list.Recipes),
		Categories: []string{models.CategoryFood, models.CategoryDrink},
	})
}

// RecipeDetail renders one recipe with its reviews
func (h *Handler) RecipeDetail(c *gin.Context) {
	raw := c.Param("id")
	if c.Query("refetch") == "1" {
		h.refetchRecipe(c, raw)
	}

	view := h.details.Assemble(c.Request.Context(), raw, h.originFor(c))
	switch view.State {
	case service.DetailNotFound:
		c.HTML(http.StatusNotFound, "not_found.html", messagePage{
			layout:  h.layout("Tidak ditemukan"),
			Message: "Resep yang kamu cari tidak tersedia.",
		})
		return
	case service.DetailError:
		c.HTML(http.StatusBadGateway, "detail.html", detailPage{layout: h.layout("Resep"), View: view, ID: raw})
		return
	}

	title := "Resep"
	if view.Recipe != nil {
		title = view.Recipe.Name
	}
	c.HTML(http.StatusOK, "detail.html", detailPage{layout: h.layout(title), View: view, ID: raw})
}

func (h *Handler) refetchRecipe(c *gin.Context, raw string) {
	id, ok := service.ParseRecipeID(raw)
	if !ok {
		return
	}
	h.queries.Refetch(c.Request.Context(), types.RecipeQuery{})
	h.queries.RefetchRecipe(c.Request.Context(), id)
}

// SharePanel renders the share panel used when no native share is available
func (h *Handler) SharePanel(c *gin.Context) {
	recipe, state := h.details.Recipe(c.Request.Context(), c.Param("id"))
	if recipe == nil {
		h.renderLookupFailure(c, state)
		return
	}

	result := h.shares.Share(c.Request.Context(), service.BuildShareLink(h.originFor(c), *recipe))
	c.HTML(http.StatusOK, "share.html", sharePage{
		layout: h.layout("Share " + recipe.Name),
		Recipe: *recipe,
		Link:   result.Link,
	})
}

// ToggleFavoriteForm toggles a favorite from a page form and redirects back
func (h *Handler) ToggleFavoriteForm(c *gin.Context) {
	recipe, state := h.details.Recipe(c.Request.Context(), c.Param("id"))
	if recipe == nil {
		h.renderLookupFailure(c, state)
		return
	}

	if _, err := h.favorites.ToggleFavorite(c.Request.Context(), *recipe); err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "error.html", messagePage{
			layout:  h.layout("Gagal"),
			Message: "Gagal menyimpan favorit, coba lagi.",
		})
		return
	}

	fallback := "/recipe/" + c.Param("id")
	c.Redirect(http.StatusSeeOther, safeRedirect(c.PostForm("redirect"), safeRedirect(refererPath(c), fallback)))
}

// Profile renders the profile and the favorites list
func (h *Handler) Profile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	page := h.profilePage(*profile)
	page.Editing = c.Query("edit") == "1"
	switch {
	case c.Query("saved") == "1":
		page.Saved = "Profile berhasil diperbarui!"
	case c.Query("avatar") == "1":
		page.Saved = "Avatar berhasil diperbarui!"
	}
	c.HTML(http.StatusOK, "profile.html", page)
}

// UpdateProfile saves username and bio from the edit form
func (h *Handler) UpdateProfile(c *gin.Context) {
	username := c.PostForm("username")
	bio := c.PostForm("bio")

	_, err := h.profiles.UpdateProfile(c.Request.Context(), username, bio)
	if err != nil {
		notice, ok := service.Notice(err)
		if !ok {
			h.renderError(c, err)
			return
		}
		h.renderProfileNotice(c, notice, true, username, bio)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile?saved=1")
}

// UpdateAvatar stores an uploaded avatar
func (h *Handler) UpdateAvatar(c *gin.Context) {
	tooLarge, _ := service.Notice(service.ErrAvatarTooLarge)
	if c.Request.ContentLength > models.MaxAvatarSize+uploadSlack {
		h.renderProfileNotice(c, tooLarge, false, "", "")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, models.MaxAvatarSize+uploadSlack)

	fh, err := c.FormFile("avatar")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.renderProfileNotice(c, tooLarge, false, "", "")
			return
		}
		notImage, _ := service.Notice(service.ErrAvatarNotImage)
		h.renderProfileNotice(c, notImage, false, "", "")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.renderError(c, err)
		return
	}
	defer f.Close()

	_, err = h.profiles.UpdateAvatar(c.Request.Context(), service.AvatarUpload{
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		notice, ok := service.Notice(err)
		if !ok {
			h.renderError(c, err)
			return
		}
		h.renderProfileNotice(c, notice, false, "", "")
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile?avatar=1")
}

func (h *Handler) profilePage(profile models.UserProfile) profilePage {
	return profilePage{
		layout:       h.layout("Profil"),
		Profile:      profile,
		Favorites:    h.favorites.ListFavorites(),
		FormUsername: profile.Username,
		FormBio:      profile.Bio,
	}
}

// renderProfileNotice re-renders the profile with a validation notice.
// Nothing was saved.
func (h *Handler) renderProfileNotice(c *gin.Context, notice string, editing bool, username, bio string) {
	profile, err := h.profiles.GetProfile(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	page := h.profilePage(*profile)
	page.Notice = notice
	if editing {
		page.Editing = true
		page.FormUsername = username
		page.FormBio = bio
	}
	c.HTML(http.StatusUnprocessableEntity, "profile.html", page)
}

func (h *Handler) renderLookupFailure(c *gin.Context, state service.DetailState) {
	if state == service.DetailNotFound {
		c.HTML(http.StatusNotFound, "not_found.html", messagePage{
			layout:  h.layout("Tidak ditemukan"),
			Message: "Resep yang kamu cari tidak tersedia.",
		})
		return
	}
	c.HTML(http.StatusBadGateway, "error.html", messagePage{
		layout:  h.layout("Gagal"),
		Message: service.FetchErrorMessage,
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, "error.html", messagePage{
		layout:  h.layout("Gagal"),
		Message: "Silakan coba lagi beberapa saat lagi.",
	})
}

// bindQuery reads list filters. Malformed numbers are dropped.
func bindQuery(c *gin.Context) types.RecipeQuery {
	var q types.RecipeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		q = types.RecipeQuery{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Sort:     c.Query("sort"),
		}
	}
	return q.Normalize()
}

func refererPath(c *gin.Context) string {
	ref := c.Request.Referer()
	if ref == "" {
		return ""
	}
	origin := "http://" + c.Request.Host
	if c.Request.TLS != nil {
		origin = "https://" + c.Request.Host
	}
	if len(ref) > len(origin) && ref[:len(origin)] == origin {
		return ref[len(origin):]
	}
	return ""
}
