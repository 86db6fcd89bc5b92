package handlers

import (
	"github.com/samber/lo"

	"github.com/creapolis/helpdesk-service/internal/api/dto"
	"github.com/creapolis/helpdesk-service/internal/domain"
)

func userRef(ref *domain.UserRef) *dto.UserRefResponse {
	if ref == nil {
		return nil
	}
	return &dto.UserRefResponse{ID: ref.ID, FullName: ref.FullName, Email: ref.Email}
}

func ticketSummary(ticket domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:         ticket.ID,
		Title:      ticket.Title,
		Status:     ticket.Status,
		Priority:   ticket.Priority,
		Category:   ticket.Category,
		Market:     ticket.Market,
		CreatedBy:  ticket.CreatedBy,
		AssignedTo: ticket.AssignedTo,
		CreatedAt:  ticket.CreatedAt,
		UpdatedAt:  ticket.UpdatedAt,
	}
}

func ticketSummaries(tickets []domain.Ticket) []dto.TicketSummary {
	return lo.Map(tickets, func(t domain.Ticket, _ int) dto.TicketSummary {
		return ticketSummary(t)
	})
}

func commentResponse(comment domain.TicketComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		Author:    userRef(comment.Author),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func historyResponse(entry domain.TicketHistory) dto.HistoryEventResponse {
	return dto.HistoryEventResponse{
		ID:        entry.ID,
		TicketID:  entry.TicketID,
		Actor:     userRef(entry.Actor),
		Action:    string(entry.Action),
		Details:   entry.Details,
		CreatedAt: entry.CreatedAt,
	}
}

func userResponse(user domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       user.Role,
		Department: user.Department,
		Market:     user.Market,
		Status:     user.Status,
		CreatedAt:  user.CreatedAt,
	}
}

func articleResponse(article domain.KnowledgeArticle) dto.ArticleResponse {
	return dto.ArticleResponse{
		ID:         article.ID,
		Title:      article.Title,
		Content:    article.Content,
		Category:   article.Category,
		Tags:       article.Tags,
		IsFeatured: article.IsFeatured,
		OrderIndex: article.OrderIndex,
		CreatedAt:  article.CreatedAt,
		UpdatedAt:  article.UpdatedAt,
	}
}
