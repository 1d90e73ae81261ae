package acceptance

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/talkboard/board-service/internal/domain"
	"github.com/talkboard/board-service/internal/dto"
)

func (s *Suite) createCategory(token, name string, parentID *string) domain.Category {
	s.T().Helper()

	resp := s.postJSON("/api/v1/categories", token, dto.CreateCategoryRequest{
		Name:     name,
		ParentID: parentID,
	})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "category creation should succeed")

	var category domain.Category
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&category))
	return category
}

func (s *Suite) createPost(token, categoryID, slug, title string) domain.Post {
	s.T().Helper()

	resp := s.postJSON("/api/v1/posts", token, dto.CreatePostRequest{
		CategoryID: categoryID,
		Slug:       slug,
		Title:      title,
		Body:       "Post body for " + title,
	})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "post creation should succeed")

	var post domain.Post
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&post))
	return post
}

func (s *Suite) TestCreatePost_Success() {
	admin := s.adminToken("postadmin@example.com")
	category := s.createCategory(admin, "General", nil)

	author := s.join("author@example.com", "Author", "Password123")

	resp := s.postJSON("/api/v1/posts", author.Token.Access, dto.CreatePostRequest{
		CategoryID: category.ID,
		Slug:       "first-post",
		Title:      "First Post",
		Body:       "Hello board",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var post domain.Post
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&post))
	s.NotEmpty(post.ID)
	s.Equal(author.ID, post.AuthorID)
	s.Equal(category.ID, post.CategoryID)
	s.Equal("first-post", post.Slug)
	s.EqualValues("published", post.Status)
}

func (s *Suite) TestCreatePost_NoToken() {
	resp := s.postJSON("/api/v1/posts", "", dto.CreatePostRequest{
		CategoryID: "00000000-0000-0000-0000-000000000000",
		Slug:       "anon-post",
		Title:      "Anon",
		Body:       "body",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestCreatePost_NonLeafCategory() {
	admin := s.adminToken("leafadmin@example.com")
	parent := s.createCategory(admin, "Parent", nil)
	s.createCategory(admin, "Child", &parent.ID)

	author := s.join("leafauthor@example.com", "Author", "Password123")

	resp := s.postJSON("/api/v1/posts", author.Token.Access, dto.CreatePostRequest{
		CategoryID: parent.ID,
		Slug:       "wrong-place",
		Title:      "Wrong Place",
		Body:       "body",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Bad request", errResp.Error)
}

func (s *Suite) TestCreatePost_UnknownCategory() {
	author := s.join("nocat@example.com", "Author", "Password123")

	resp := s.postJSON("/api/v1/posts", author.Token.Access, dto.CreatePostRequest{
		CategoryID: "11111111-1111-1111-1111-111111111111",
		Slug:       "lost-post",
		Title:      "Lost",
		Body:       "body",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestCreatePost_DuplicateSlug() {
	admin := s.adminToken("slugadmin@example.com")
	category := s.createCategory(admin, "Slugs", nil)
	author := s.join("slugauthor@example.com", "Author", "Password123")

	s.createPost(author.Token.Access, category.ID, "taken-slug", "Original")

	resp := s.postJSON("/api/v1/posts", author.Token.Access, dto.CreatePostRequest{
		CategoryID: category.ID,
		Slug:       "taken-slug",
		Title:      "Copy",
		Body:       "body",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)

	// only the original survives
	listResp := s.doJSON(http.MethodGet, "/api/v1/posts?category_id="+category.ID, "", nil)
	defer listResp.Body.Close()

	var page dto.PostPage
	s.Require().NoError(json.NewDecoder(listResp.Body).Decode(&page))
	s.EqualValues(1, page.Pagination.Records)
	s.Equal("Original", page.Data[0].Title)
}

func (s *Suite) TestCreatePost_SameSlugDifferentCategory() {
	admin := s.adminToken("crosscatadmin@example.com")
	first := s.createCategory(admin, "First", nil)
	second := s.createCategory(admin, "Second", nil)
	author := s.join("crosscat@example.com", "Author", "Password123")

	s.createPost(author.Token.Access, first.ID, "shared-slug", "In First")
	s.createPost(author.Token.Access, second.ID, "shared-slug", "In Second")
}

func (s *Suite) TestListPosts_FilterByCategory() {
	admin := s.adminToken("filteradmin@example.com")
	golang := s.createCategory(admin, "Go", nil)
	rust := s.createCategory(admin, "Rust", nil)
	author := s.join("filterauthor@example.com", "Author", "Password123")

	for i := 0; i < 5; i++ {
		s.createPost(author.Token.Access, golang.ID, fmt.Sprintf("go-post-%d", i), fmt.Sprintf("Go Post %d", i))
	}
	for i := 0; i < 3; i++ {
		s.createPost(author.Token.Access, rust.ID, fmt.Sprintf("rust-post-%d", i), fmt.Sprintf("Rust Post %d", i))
	}

	resp := s.doJSON(http.MethodGet, "/api/v1/posts?category_id="+golang.ID, "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var page dto.PostPage
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.EqualValues(5, page.Pagination.Records)
	s.Len(page.Data, 5)
	for _, post := range page.Data {
		s.Equal(golang.ID, post.CategoryID)
	}
}

func (s *Suite) TestListPosts_FilterByCategoryName() {
	admin := s.adminToken("nameadmin@example.com")
	category := s.createCategory(admin, "Named", nil)
	author := s.join("nameauthor@example.com", "Author", "Password123")
	s.createPost(author.Token.Access, category.ID, "named-post", "Named Post")

	resp := s.doJSON(http.MethodGet, "/api/v1/posts?category=Named", "", nil)
	defer resp.Body.Close()

	var page dto.PostPage
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.EqualValues(1, page.Pagination.Records)

	// unknown name matches nothing rather than failing
	missResp := s.doJSON(http.MethodGet, "/api/v1/posts?category=Unknown", "", nil)
	defer missResp.Body.Close()
	s.Equal(http.StatusOK, missResp.StatusCode)

	var missPage dto.PostPage
	s.Require().NoError(json.NewDecoder(missResp.Body).Decode(&missPage))
	s.EqualValues(0, missPage.Pagination.Records)
	s.Empty(missPage.Data)
}

func (s *Suite) TestListPosts_Pagination() {
	admin := s.adminToken("pageadmin@example.com")
	category := s.createCategory(admin, "Pages", nil)
	author := s.join("pageauthor@example.com", "Author", "Password123")

	for i := 0; i < 25; i++ {
		s.createPost(author.Token.Access, category.ID, fmt.Sprintf("page-post-%02d", i), fmt.Sprintf("Page Post %02d", i))
	}

	resp := s.doJSON(http.MethodGet, "/api/v1/posts?category_id="+category.ID+"&page=2&limit=10", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var page dto.PostPage
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.Equal(2, page.Pagination.Current)
	s.Equal(10, page.Pagination.Limit)
	s.EqualValues(25, page.Pagination.Records)
	s.Equal(3, page.Pagination.Pages)
	s.Len(page.Data, 10)
}

func (s *Suite) TestListPosts_LimitClamped() {
	admin := s.adminToken("clampadmin@example.com")
	category := s.createCategory(admin, "Clamp", nil)
	author := s.join("clampauthor@example.com", "Author", "Password123")
	s.createPost(author.Token.Access, category.ID, "clamp-post", "Clamp Post")

	resp := s.doJSON(http.MethodGet, "/api/v1/posts?limit=1000", "", nil)
	defer resp.Body.Close()

	var page dto.PostPage
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.Equal(100, page.Pagination.Limit)
}

func (s *Suite) TestListPosts_Search() {
	admin := s.adminToken("searchadmin@example.com")
	category := s.createCategory(admin, "Search", nil)
	author := s.join("searchauthor@example.com", "Author", "Password123")

	s.createPost(author.Token.Access, category.ID, "needle-post", "The Needle")
	s.createPost(author.Token.Access, category.ID, "hay-post", "Just Hay")

	resp := s.doJSON(http.MethodGet, "/api/v1/posts?search=needle", "", nil)
	defer resp.Body.Close()

	var page dto.PostPage
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.EqualValues(1, page.Pagination.Records)
	s.Equal("The Needle", page.Data[0].Title)
}

func (s *Suite) TestListPosts_BadDateFilter() {
	resp := s.doJSON(http.MethodGet, "/api/v1/posts?from=yesterday", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestGetPost_Success() {
	admin := s.adminToken("getadmin@example.com")
	category := s.createCategory(admin, "Get", nil)
	author := s.join("getauthor@example.com", "Author", "Password123")
	created := s.createPost(author.Token.Access, category.ID, "get-post", "Get Post")

	resp := s.doJSON(http.MethodGet, "/api/v1/posts/"+created.ID, "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var post domain.Post
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&post))
	s.Equal(created.ID, post.ID)
	s.Equal("Get Post", post.Title)
}

func (s *Suite) TestGetPost_NotFound() {
	resp := s.doJSON(http.MethodGet, "/api/v1/posts/22222222-2222-2222-2222-222222222222", "", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestUpdatePost_PartialUpdate() {
	admin := s.adminToken("updateadmin@example.com")
	category := s.createCategory(admin, "Update", nil)
	author := s.join("updateauthor@example.com", "Author", "Password123")
	created := s.createPost(author.Token.Access, category.ID, "update-post", "Before")

	newTitle := "After"
	resp := s.doJSON(http.MethodPatch, "/api/v1/posts/"+created.ID, author.Token.Access, dto.UpdatePostRequest{
		Title: &newTitle,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var post domain.Post
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&post))
	s.Equal("After", post.Title)
	s.Equal(created.Body, post.Body, "untouched fields stay unchanged")
	s.Equal(created.Slug, post.Slug)
}

func (s *Suite) TestUpdatePost_NotOwner() {
	admin := s.adminToken("owneradmin@example.com")
	category := s.createCategory(admin, "Owner", nil)
	owner := s.join("owner@example.com", "Owner", "Password123")
	created := s.createPost(owner.Token.Access, category.ID, "owned-post", "Owned")

	intruder := s.join("intruder@example.com", "Intruder", "Password123")

	newTitle := "Hijacked"
	resp := s.doJSON(http.MethodPatch, "/api/v1/posts/"+created.ID, intruder.Token.Access, dto.UpdatePostRequest{
		Title: &newTitle,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)

	var errResp dto.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	s.Equal("Forbidden", errResp.Error)
}

func (s *Suite) TestDeletePost_Owner() {
	admin := s.adminToken("deladmin@example.com")
	category := s.createCategory(admin, "Delete", nil)
	author := s.join("delauthor@example.com", "Author", "Password123")
	created := s.createPost(author.Token.Access, category.ID, "del-post", "Delete Me")

	resp := s.doJSON(http.MethodDelete, "/api/v1/posts/"+created.ID, author.Token.Access, nil)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	getResp := s.doJSON(http.MethodGet, "/api/v1/posts/"+created.ID, "", nil)
	defer getResp.Body.Close()
	s.Equal(http.StatusNotFound, getResp.StatusCode)
}

func (s *Suite) TestDeletePost_AdminCanDeleteOthers() {
	admin := s.adminToken("moderator@example.com")
	category := s.createCategory(admin, "Moderated", nil)
	author := s.join("moderated@example.com", "Author", "Password123")
	created := s.createPost(author.Token.Access, category.ID, "mod-post", "Moderate Me")

	resp := s.doJSON(http.MethodDelete, "/api/v1/posts/"+created.ID, admin, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestDeletePost_NotOwnerNotAdmin() {
	admin := s.adminToken("guardadmin@example.com")
	category := s.createCategory(admin, "Guarded", nil)
	owner := s.join("guarded@example.com", "Owner", "Password123")
	created := s.createPost(owner.Token.Access, category.ID, "guard-post", "Guarded")

	other := s.join("other@example.com", "Other", "Password123")

	resp := s.doJSON(http.MethodDelete, "/api/v1/posts/"+created.ID, other.Token.Access, nil)
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}
