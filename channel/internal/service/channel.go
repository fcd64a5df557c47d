package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/shafe/handcraft/channel/internal/chatbot"
	"github.com/shafe/handcraft/channel/internal/hub"
	"github.com/shafe/handcraft/channel/internal/otel"
	"github.com/shafe/handcraft/channel/pkg/request"
	"github.com/shafe/handcraft/channel/pkg/response"
	commonErrors "github.com/shafe/handcraft/internal/errors"
	"github.com/shafe/handcraft/internal/log"
	"github.com/shafe/handcraft/internal/repository"
)

const (
	EventPost    = "post"
	EventComment = "comment"
	EventLike    = "like"
)

type ChannelService struct {
	queries *repository.Queries
	hub     *hub.Hub
}

func NewChannelService(queries *repository.Queries, hub *hub.Hub) ChannelService {
	return ChannelService{queries: queries, hub: hub}
}

func (svc ChannelService) InsertPost(
	c context.Context,
	authorID uuid.UUID,
	param request.InsertPost,
) (response.Post, error) {
	c, span := otel.Tracer.Start(c, "ChannelService InsertPost")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService InsertPost").
		Str(log.KeyUserID, authorID.String()).
		Logger()

	post, err := svc.queries.InsertPost(c, repository.InsertPostParams{
		AuthorID: authorID,
		Body:     param.Body,
		ImageUrl: param.ImageUrl,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting post with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Post{}, err
	}
	logger.Info().Str(log.KeyPostID, post.ID.String()).Msg("inserted post")

	svc.publish(c, response.Event{
		Kind:      EventPost,
		PostID:    post.ID,
		ActorID:   authorID,
		CreatedAt: time.Now(),
	})

	return post.Response(0), nil
}

func (svc ChannelService) GetPosts(
	c context.Context,
	includeHidden bool,
) ([]response.Post, error) {
	c, span := otel.Tracer.Start(c, "ChannelService GetPosts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService GetPosts").
		Logger()

	rows, err := svc.queries.GetPosts(c, includeHidden)
	if err != nil {
		err = fmt.Errorf("failed getting posts with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	posts := make([]response.Post, 0, len(rows))
	for _, row := range rows {
		likes, err := svc.queries.CountPostLikes(c, row.ID)
		if err != nil {
			err = fmt.Errorf("failed counting likes for post=%s with error=%w", row.ID, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		posts = append(posts, row.Response(likes))
	}
	return posts, nil
}

// FindPostById returns the post with its comments and like count.
func (svc ChannelService) FindPostById(
	c context.Context,
	postID uuid.UUID,
) (response.Post, []response.Comment, error) {
	c, span := otel.Tracer.Start(c, "ChannelService FindPostById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService FindPostById").
		Str(log.KeyPostID, postID.String()).
		Logger()

	post, err := svc.queries.FindPostById(c, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrPostNotFound
		} else {
			err = fmt.Errorf("failed finding post by id=%s with error=%w", postID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Post{}, nil, err
	}

	likes, err := svc.queries.CountPostLikes(c, postID)
	if err != nil {
		err = fmt.Errorf("failed counting likes for post=%s with error=%w", postID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Post{}, nil, err
	}

	rows, err := svc.queries.GetCommentsByPostId(c, postID)
	if err != nil {
		err = fmt.Errorf("failed getting comments for post=%s with error=%w", postID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Post{}, nil, err
	}
	comments := make([]response.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.Response())
	}

	return post.Response(likes), comments, nil
}

func (svc ChannelService) InsertComment(
	c context.Context,
	authorID uuid.UUID,
	postID uuid.UUID,
	param request.InsertComment,
) (response.Comment, error) {
	c, span := otel.Tracer.Start(c, "ChannelService InsertComment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService InsertComment").
		Str(log.KeyUserID, authorID.String()).
		Str(log.KeyPostID, postID.String()).
		Logger()

	if _, err := svc.queries.FindPostById(c, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrPostNotFound
		} else {
			err = fmt.Errorf("failed finding post by id=%s with error=%w", postID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Comment{}, err
	}

	comment, err := svc.queries.InsertComment(c, repository.InsertCommentParams{
		PostID:   postID,
		AuthorID: authorID,
		Body:     param.Body,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting comment with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Comment{}, err
	}
	logger.Info().Msg("inserted comment")

	svc.publish(c, response.Event{
		Kind:      EventComment,
		PostID:    postID,
		ActorID:   authorID,
		CreatedAt: time.Now(),
	})

	return comment.Response(), nil
}

// LikePost records the like; liking an already liked post is a no-op
// and publishes no event.
func (svc ChannelService) LikePost(
	c context.Context,
	userID uuid.UUID,
	postID uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "ChannelService LikePost")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService LikePost").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyPostID, postID.String()).
		Logger()

	if _, err := svc.queries.FindPostById(c, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrPostNotFound
		} else {
			err = fmt.Errorf("failed finding post by id=%s with error=%w", postID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	inserted, err := svc.queries.UpsertPostLike(c, repository.UpsertPostLikeParams{
		PostID: postID,
		UserID: userID,
	})
	if err != nil {
		err = fmt.Errorf("failed liking post=%s with error=%w", postID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if inserted == 0 {
		logger.Info().Msg("post already liked")
		return nil
	}
	logger.Info().Msg("liked post")

	svc.publish(c, response.Event{
		Kind:      EventLike,
		PostID:    postID,
		ActorID:   userID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (svc ChannelService) UnlikePost(
	c context.Context,
	userID uuid.UUID,
	postID uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "ChannelService UnlikePost")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService UnlikePost").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyPostID, postID.String()).
		Logger()

	if _, err := svc.queries.DeletePostLike(c, repository.DeletePostLikeParams{
		PostID: postID,
		UserID: userID,
	}); err != nil {
		err = fmt.Errorf("failed unliking post=%s with error=%w", postID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("unliked post")
	return nil
}

// DeletePost removes the author's own post.
func (svc ChannelService) DeletePost(
	c context.Context,
	authorID uuid.UUID,
	postID uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "ChannelService DeletePost")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService DeletePost").
		Str(log.KeyUserID, authorID.String()).
		Str(log.KeyPostID, postID.String()).
		Logger()

	deleted, err := svc.queries.DeletePost(c, repository.DeletePostParams{
		ID:       postID,
		AuthorID: authorID,
	})
	if err != nil {
		err = fmt.Errorf("failed deleting post=%s with error=%w", postID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if deleted == 0 {
		err = commonErrors.ErrPostNotFound
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted post")
	return nil
}

func (svc ChannelService) DeleteComment(
	c context.Context,
	authorID uuid.UUID,
	commentID uuid.UUID,
) error {
	c, span := otel.Tracer.Start(c, "ChannelService DeleteComment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService DeleteComment").
		Str(log.KeyUserID, authorID.String()).
		Logger()

	deleted, err := svc.queries.DeleteComment(c, repository.DeleteCommentParams{
		ID:       commentID,
		AuthorID: authorID,
	})
	if err != nil {
		err = fmt.Errorf("failed deleting comment=%s with error=%w", commentID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if deleted == 0 {
		err = commonErrors.ErrPostNotFound
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted comment")
	return nil
}

// ModeratePost hides or restores a post.
func (svc ChannelService) ModeratePost(
	c context.Context,
	postID uuid.UUID,
	param request.ModeratePost,
) (response.Post, error) {
	c, span := otel.Tracer.Start(c, "ChannelService ModeratePost")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService ModeratePost").
		Str(log.KeyPostID, postID.String()).
		Logger()

	post, err := svc.queries.SetPostHidden(c, repository.SetPostHiddenParams{
		ID:     postID,
		Hidden: param.Hidden,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrPostNotFound
		} else {
			err = fmt.Errorf("failed moderating post=%s with error=%w", postID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Post{}, err
	}
	logger.Info().Bool("hidden", post.Hidden).Msg("moderated post")

	likes, err := svc.queries.CountPostLikes(c, postID)
	if err != nil {
		err = fmt.Errorf("failed counting likes for post=%s with error=%w", postID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Post{}, err
	}
	return post.Response(likes), nil
}

// Chat answers a buyer utterance with the chatbot rule set.
func (svc ChannelService) Chat(c context.Context, param request.Chat) response.Chat {
	c, span := otel.Tracer.Start(c, "ChannelService Chat")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService Chat").
		Logger()

	intent, reply := chatbot.Answer(param.Message)
	logger.Info().Str(log.KeyIntent, intent).Msg("answered chat message")
	return response.Chat{Intent: intent, Reply: reply}
}

// publish is best effort; a failed fan out never fails the write that
// triggered it.
func (svc ChannelService) publish(c context.Context, event response.Event) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelService publish").
		Logger()
	if err := svc.hub.Publish(c, event); err != nil {
		logger.Warn().Err(err).Msg("failed publishing event")
	}
}
