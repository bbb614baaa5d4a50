package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
	"github.com/seralin/inkwell/internal/service"
)

const fetchTimeout = 30 * time.Second

// fetchPageCmd runs one paginated fetch and delivers the resolution together
// with its originating request. No cancellation is attempted when the request
// is superseded; the stale resolution is simply discarded by the controller.
func fetchPageCmd[T any](fetch func(context.Context, pager.Request) ([]T, int, error), req pager.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		items, total, err := fetch(ctx, req)
		return PageMsg[T]{Req: req, Items: items, Total: total, Err: err}
	}
}

// maybeFetch turns a controller issue result into a command, or nil when the
// controller short-circuited.
func maybeFetch[T any](fetch func(context.Context, pager.Request) ([]T, int, error), req pager.Request, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return fetchPageCmd(fetch, req)
}

func loadCategoriesCmd(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		cats, err := svc.Categories(ctx)
		return CategoriesMsg{Categories: cats, Err: err}
	}
}

func loadNovelCmd(svc *service.CatalogService, novelID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		novel, err := svc.Novel(ctx, novelID)
		return NovelMsg{Novel: novel, Err: err}
	}
}

func loadTOCCmd(svc *service.CatalogService, novelID string, page, pageSize int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		refs, total, err := svc.Chapters(ctx, novelID, page, pageSize)
		return TOCMsg{NovelID: novelID, Refs: refs, Total: total, Err: err}
	}
}

func loadChapterCmd(svc *service.ReaderService, novelID, chapterID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		ch, err := svc.Chapter(ctx, novelID, chapterID)
		return ChapterMsg{Chapter: ch, Err: err}
	}
}

func shelfActionCmd(svc *service.ShelfService, novelID string, add bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var err error
		if add {
			err = svc.Add(ctx, novelID)
		} else {
			err = svc.Remove(ctx, novelID)
		}
		return ShelfActionMsg{NovelID: novelID, Added: add, Err: err}
	}
}

func toggleLikeCmd(svc *service.SocialService, reviewID string, currentlyLiked bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		liked, err := svc.ToggleReviewLike(ctx, reviewID, currentlyLiked)
		return LikeToggledMsg{ReviewID: reviewID, Liked: liked, Err: err}
	}
}

func postReviewCmd(svc *service.SocialService, novelID string, rating int, body string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		review, err := svc.CreateReview(ctx, novelID, rating, body)
		return ReviewPostedMsg{Review: review, Err: err}
	}
}

func deleteReviewCmd(svc *service.SocialService, reviewID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return ReviewDeletedMsg{ReviewID: reviewID, Err: svc.DeleteReview(ctx, reviewID)}
	}
}

func postCommentCmd(svc *service.SocialService, chapterID, body string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		comment, err := svc.CreateComment(ctx, chapterID, body)
		return CommentPostedMsg{Comment: comment, Err: err}
	}
}

func loadProfileCmd(svc *service.SessionService, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		profile, err := svc.Profile(ctx, userID)
		return ProfileMsg{Profile: profile, Err: err}
	}
}

func updateProfileCmd(svc *service.SessionService, patch domain.ProfilePatch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		profile, err := svc.UpdateProfile(ctx, patch)
		return ProfileMsg{Profile: profile, Err: err}
	}
}

func signOutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		return SignedOutMsg{Err: svc.SignOut()}
	}
}

func statusCmd(message string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: message, IsError: isError}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
