package api

import "github.com/seralin/inkwell/internal/domain"

func mapCategory(d categoryDTO) domain.Category {
	return domain.Category{ID: d.ID, Slug: d.Slug, Name: d.Name}
}

func mapCategories(dtos []categoryDTO) []domain.Category {
	cats := make([]domain.Category, len(dtos))
	for i, d := range dtos {
		cats[i] = mapCategory(d)
	}
	return cats
}

func mapNovel(d novelDTO) domain.Novel {
	return domain.Novel{
		ID:         d.ID,
		Slug:       d.Slug,
		Title:      d.Title,
		Author:     d.Author,
		AuthorID:   d.AuthorID,
		Synopsis:   d.Synopsis,
		CategoryID: d.CategoryID,
		Category:   d.CategoryName,
		Status:     domain.NovelStatus(d.Status),
		Chapters:   d.ChapterCount,
		WordCount:  d.WordCount,
		Views:      d.Views,
		Rating:     d.Rating,
		CoverURL:   d.CoverURL,
		UpdatedAt:  d.UpdatedAt,
	}
}

func mapNovels(dtos []novelDTO) []domain.Novel {
	novels := make([]domain.Novel, len(dtos))
	for i, d := range dtos {
		novels[i] = mapNovel(d)
	}
	return novels
}

func mapChapterRefs(dtos []chapterRefDTO) []domain.ChapterRef {
	refs := make([]domain.ChapterRef, len(dtos))
	for i, d := range dtos {
		refs[i] = domain.ChapterRef{
			ID:        d.ID,
			Index:     d.Index,
			Title:     d.Title,
			WordCount: d.WordCount,
			CreatedAt: d.CreatedAt,
		}
	}
	return refs
}

func mapChapter(d chapterDTO) *domain.Chapter {
	return &domain.Chapter{
		ID:        d.ID,
		NovelID:   d.NovelID,
		Index:     d.Index,
		Title:     d.Title,
		Content:   d.Content,
		WordCount: d.WordCount,
		PrevID:    d.PrevID,
		NextID:    d.NextID,
		CreatedAt: d.CreatedAt,
	}
}

func mapRankEntries(kind domain.RankKind, dtos []rankEntryDTO) []domain.RankEntry {
	entries := make([]domain.RankEntry, len(dtos))
	for i, d := range dtos {
		entries[i] = domain.RankEntry{
			Kind:       kind,
			Position:   d.Position,
			NovelID:    d.NovelID,
			Title:      d.Title,
			Author:     d.Author,
			CategoryID: d.CategoryID,
			Views:      d.Views,
			Rating:     d.Rating,
			UserID:     d.UserID,
			Username:   d.Username,
			AvatarURL:  d.AvatarURL,
			Metric:     d.Metric,
		}
		if entries[i].Position == 0 {
			entries[i].Position = i + 1
		}
	}
	return entries
}

func mapReview(d reviewDTO) domain.Review {
	return domain.Review{
		ID:        d.ID,
		NovelID:   d.NovelID,
		UserID:    d.UserID,
		Username:  d.Username,
		Rating:    d.Rating,
		Body:      d.Body,
		Likes:     d.Likes,
		LikedByMe: d.LikedByMe,
		CreatedAt: d.CreatedAt,
	}
}

func mapReviews(dtos []reviewDTO) []domain.Review {
	reviews := make([]domain.Review, len(dtos))
	for i, d := range dtos {
		reviews[i] = mapReview(d)
	}
	return reviews
}

func mapComment(d commentDTO) domain.Comment {
	return domain.Comment{
		ID:        d.ID,
		ChapterID: d.ChapterID,
		NovelID:   d.NovelID,
		UserID:    d.UserID,
		Username:  d.Username,
		Body:      d.Body,
		CreatedAt: d.CreatedAt,
	}
}

func mapComments(dtos []commentDTO) []domain.Comment {
	comments := make([]domain.Comment, len(dtos))
	for i, d := range dtos {
		comments[i] = mapComment(d)
	}
	return comments
}

func mapProfile(d profileDTO) *domain.UserProfile {
	return &domain.UserProfile{
		ID:            d.ID,
		Username:      d.Username,
		Bio:           d.Bio,
		AvatarURL:     d.AvatarURL,
		NovelsWritten: d.NovelsWritten,
		ReadingTime:   d.ReadingTime,
		JoinedAt:      d.JoinedAt,
	}
}

func mapLibraryEntries(dtos []libraryEntryDTO) []domain.LibraryEntry {
	entries := make([]domain.LibraryEntry, len(dtos))
	for i, d := range dtos {
		entries[i] = domain.LibraryEntry{
			Novel:         mapNovel(d.Novel),
			AddedAt:       d.AddedAt,
			LastChapterID: d.LastChapterID,
			LastChapter:   d.LastChapter,
		}
	}
	return entries
}

func mapHistoryEntries(dtos []historyEntryDTO) []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, len(dtos))
	for i, d := range dtos {
		entries[i] = domain.HistoryEntry{
			Novel:        mapNovel(d.Novel),
			ChapterID:    d.ChapterID,
			ChapterIndex: d.ChapterIndex,
			ChapterTitle: d.ChapterTitle,
			ReadAt:       d.ReadAt,
		}
	}
	return entries
}
