package render

import "context"

type Renderer interface {
	RenderSection(ctx context.Context, page PostPage) ([]byte, error)
	RenderPost(ctx context.Context, page PostPage) ([]byte, error)
	RenderIndex(ctx context.Context, page IndexPage) ([]byte, error)
}
