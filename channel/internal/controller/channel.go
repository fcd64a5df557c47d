package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/shafe/handcraft/channel/internal/hub"
	"github.com/shafe/handcraft/channel/internal/otel"
	"github.com/shafe/handcraft/channel/internal/service"
	"github.com/shafe/handcraft/channel/pkg/request"
	"github.com/shafe/handcraft/internal/common"
	commonErrors "github.com/shafe/handcraft/internal/errors"
	commonHttp "github.com/shafe/handcraft/internal/http"
	"github.com/shafe/handcraft/internal/log"
)

type ChannelController struct {
	service *service.ChannelService
	hub     *hub.Hub
}

// AttachChannelController registers public reads and the chatbot on
// router, writes on protected and moderation on admin.
func AttachChannelController(router, protected, admin *mux.Router, service *service.ChannelService, hub *hub.Hub) {
	controller := ChannelController{service: service, hub: hub}

	router.HandleFunc("/posts", controller.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/posts/{postId}", controller.FindPostById).Methods(http.MethodGet)
	router.HandleFunc("/chatbot/query", controller.Chat).Methods(http.MethodPost)
	router.HandleFunc("/channel/live", hub.Subscribe).Methods(http.MethodGet)

	protected.HandleFunc("/posts", controller.InsertPost).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{postId}", controller.DeletePost).Methods(http.MethodDelete)
	protected.HandleFunc("/posts/{postId}/comments", controller.InsertComment).Methods(http.MethodPost)
	protected.HandleFunc("/comments/{commentId}", controller.DeleteComment).Methods(http.MethodDelete)
	protected.HandleFunc("/posts/{postId}/likes", controller.LikePost).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{postId}/likes", controller.UnlikePost).Methods(http.MethodDelete)

	admin.HandleFunc("/moderation/posts", controller.GetAllPosts).Methods(http.MethodGet)
	admin.HandleFunc("/moderation/posts/{postId}", controller.ModeratePost).Methods(http.MethodPut)
}

func (t ChannelController) InsertPost(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChannelController InsertPost")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelController InsertPost").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.InsertPost{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting post").Logger()
	c = logger.WithContext(c)
	post, err := t.service.InsertPost(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting post with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("inserted post")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "inserted post",
		"data":       map[string]interface{}{"post": post},
	})
}

func (t ChannelController) GetPosts(w http.ResponseWriter, r *http.Request) {
	t.getPosts(w, r, false)
}

func (t ChannelController) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	t.getPosts(w, r, true)
}

func (t ChannelController) getPosts(w http.ResponseWriter, r *http.Request, includeHidden bool) {
	c, span := otel.Tracer.Start(r.Context(), "ChannelController GetPosts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelController GetPosts").
		Logger()

	c = logger.WithContext(c)
	posts, err := t.service.GetPosts(c, includeHidden)
	if err != nil {
		err = fmt.Errorf("failed getting posts with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("got posts")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "got posts",
		"data":       map[string]interface{}{"posts": posts},
	})
}

func (t ChannelController) FindPostById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChannelController FindPostById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelController FindPostById").
		Logger()

	postId, err := uuid.Parse(mux.Vars(r)["postId"])
	if err != nil {
		err = fmt.Errorf("failed parsing postId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyPostID, postId.String()).Logger()

	c = logger.WithContext(c)
	post, comments, err := t.service.FindPostById(c, postId)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrPostNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed finding post with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found post")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found post",
		"data":       map[string]interface{}{"post": post, "comments": comments},
	})
}

func (t ChannelController) DeletePost(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChannelController DeletePost")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelController DeletePost").
		Logger()

	postId, err := uuid.Parse(mux.Vars(r)["postId"])
	if err != nil {
		err = fmt.Errorf("failed parsing postId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyPostID, postId.String()).Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	c = logger.WithContext(c)
	if err := t.service.DeletePost(c, userId, postId); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrPostNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed deleting post with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("deleted post")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "deleted post",
	})
}

func (t ChannelController) InsertComment(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChannelController InsertComment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelController InsertComment").
		Logger()

	postId, err := uuid.Parse(mux.Vars(r)["postId"])
	if err != nil {
		err = fmt.Errorf("failed parsing postId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyPostID, postId.String()).Logger()

	reqBody := request.InsertComment{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	c = logger.WithContext(c)
	comment, err := t.service.InsertComment(c, userId, postId, reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrPostNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed inserting comment with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("inserted comment")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "inserted comment",
		"data":       map[string]interface{}{"comment": comment},
	})
}

func (t ChannelController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChannelController DeleteComment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelController DeleteComment").
		Logger()

	commentId, err := uuid.Parse(mux.Vars(r)["commentId"])
	if err != nil {
		err = fmt.Errorf("failed parsing commentId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	c = logger.WithContext(c)
	if err := t.service.DeleteComment(c, userId, commentId); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrPostNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed deleting comment with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("deleted comment")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "deleted comment",
	})
}

func (t ChannelController) LikePost(w http.ResponseWriter, r *http.Request) {
	t.togglePostLike(w, r, true)
}

func (t ChannelController) UnlikePost(w http.ResponseWriter, r *http.Request) {
	t.togglePostLike(w, r, false)
}

func (t ChannelController) togglePostLike(w http.ResponseWriter, r *http.Request, like bool) {
	c, span := otel.Tracer.Start(r.Context(), "ChannelController TogglePostLike")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelController TogglePostLike").
		Logger()

	postId, err := uuid.Parse(mux.Vars(r)["postId"])
	if err != nil {
		err = fmt.Errorf("failed parsing postId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyPostID, postId.String()).Logger()

	userId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	c = logger.WithContext(c)
	if like {
		err = t.service.LikePost(c, userId, postId)
	} else {
		err = t.service.UnlikePost(c, userId, postId)
	}
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrPostNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed toggling post like with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("toggled post like")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "toggled post like",
	})
}

func (t ChannelController) ModeratePost(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChannelController ModeratePost")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelController ModeratePost").
		Logger()

	postId, err := uuid.Parse(mux.Vars(r)["postId"])
	if err != nil {
		err = fmt.Errorf("failed parsing postId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyPostID, postId.String()).Logger()

	reqBody := request.ModeratePost{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	c = logger.WithContext(c)
	post, err := t.service.ModeratePost(c, postId, reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrPostNotFound) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed moderating post with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("moderated post")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "moderated post",
		"data":       map[string]interface{}{"post": post},
	})
}

func (t ChannelController) Chat(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ChannelController Chat")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ChannelController Chat").
		Logger()

	reqBody := request.Chat{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}

	c = logger.WithContext(c)
	chat := t.service.Chat(c, reqBody)
	logger.Info().Str(log.KeyIntent, chat.Intent).Msg("answered chat")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "answered chat",
		"data":       map[string]interface{}{"chat": chat},
	})
}
