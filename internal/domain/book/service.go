package book

import (
	"context"
	"errors"
)

// Service 图书领域服务接口
type Service interface {
	// Create 上架图书
	// 业务规则：必填字段、分类枚举、价格/折扣/库存范围、ISBN不重复
	Create(ctx context.Context, attrs Attributes, sellerID string) (*Book, error)

	Get(ctx context.Context, id string) (*Book, error)

	// Update 部分更新，提供的字段（包括零值）都会被应用
	Update(ctx context.Context, id string, patch Patch) (*Book, error)

	Delete(ctx context.Context, id string) error

	List(ctx context.Context, params ListParams) ([]*Book, int64, ListParams, error)

	Featured(ctx context.Context, limit int) ([]*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, attrs Attributes, sellerID string) (*Book, error) {
	// 1. 构造实体（内含字段校验）
	book, err := NewBook(attrs, sellerID)
	if err != nil {
		return nil, err
	}

	// 2. ISBN去重（唯一索引兜底并发）
	if err := s.ensureISBNAvailable(ctx, book.ISBN, ""); err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) Get(ctx context.Context, id string) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, patch Patch) (*Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := book.Apply(patch); err != nil {
		return nil, err
	}

	if patch.ISBN != nil {
		if err := s.ensureISBNAvailable(ctx, book.ISBN, book.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Book, int64, ListParams, error) {
	params = params.Normalize()
	books, total, err := s.repo.List(ctx, params)
	return books, total, params, err
}

func (s *service) Featured(ctx context.Context, limit int) ([]*Book, error) {
	return s.repo.Featured(ctx, ClampFeaturedLimit(limit))
}

// ensureISBNAvailable 检查ISBN是否被其他图书占用
func (s *service) ensureISBNAvailable(ctx context.Context, isbn, selfID string) error {
	if isbn == "" {
		return nil
	}
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrISBNDuplicate
	}
	return nil
}
