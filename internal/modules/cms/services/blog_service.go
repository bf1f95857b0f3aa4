package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/repositories"
)

const entityBlogPost = "blog_post"

type BlogService struct {
	blogRepo     repositories.BlogRepo
	auditService *audit.Service
}

func NewBlogService(blogRepo repositories.BlogRepo, auditService *audit.Service) *BlogService {
	return &BlogService{
		blogRepo:     blogRepo,
		auditService: auditService,
	}
}

// ListPosts returns posts newest first
func (s *BlogService) ListPosts(ctx context.Context, limit int) ([]models.BlogPost, error) {
	return s.blogRepo.List(ctx, limit)
}

// GetPost retrieves a post by ID
func (s *BlogService) GetPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, entityBlogPost)
	}
	return post, nil
}

// CreatePost creates a post; the author defaults to "Admin"
func (s *BlogService) CreatePost(ctx context.Context, actor audit.Actor, req *models.CreateBlogPostRequest) (*models.BlogPost, error) {
	post := &models.BlogPost{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Author:   strings.TrimSpace(req.Author),
		ImageURL: strings.TrimSpace(req.ImageURL),
	}
	if post.Title == "" || strings.TrimSpace(post.Content) == "" {
		return nil, validation("title and content are required")
	}
	if post.Author == "" {
		post.Author = models.DefaultAuthor
	}

	if err := s.blogRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionCreate, entityBlogPost, idString(post.ID), nil, post)
	return post, nil
}

// UpdatePost applies a partial update
func (s *BlogService) UpdatePost(ctx context.Context, actor audit.Actor, id uint, req *models.UpdateBlogPostRequest) (*models.BlogPost, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *post

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, validation("title cannot be empty")
		}
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, validation("content cannot be empty")
		}
		post.Content = *req.Content
	}
	if req.Author != nil {
		post.Author = strings.TrimSpace(*req.Author)
		if post.Author == "" {
			post.Author = models.DefaultAuthor
		}
	}
	if req.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := s.blogRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update blog post: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, entityBlogPost, idString(id), before, post)
	return post, nil
}

// DeletePost removes a post
func (s *BlogService) DeletePost(ctx context.Context, actor audit.Actor, id uint) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return translate(err, entityBlogPost)
	}

	s.auditService.Record(ctx, actor, audit.ActionDelete, entityBlogPost, idString(id), post, nil)
	return nil
}
