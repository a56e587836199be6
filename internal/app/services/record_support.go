package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"
	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/repositories"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
	"github.com/yigit/campusnet/internal/pkg/filestorage"
	"github.com/yigit/campusnet/internal/pkg/metrics"
)

// recordSupport carries what the dependent-record services share
type recordSupport struct {
	repos      *repositories.Repositories
	storage    filestorage.FileStorage
	authorizer authz.Authorizer
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

func newRecordSupport(deps Dependencies) *recordSupport {
	return &recordSupport{
		repos:      deps.Repos,
		storage:    deps.Storage,
		authorizer: deps.Authorizer,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// resolveOwner picks the owner of a new record (the actor unless one is given),
// checks that the owner exists and that the actor may create for them.
func (s *recordSupport) resolveOwner(ctx context.Context, actor *authz.Actor, requested *int64) (int64, error) {
	var ownerID int64
	switch {
	case requested != nil:
		ownerID = *requested
	case actor != nil:
		ownerID = actor.UserID
	default:
		return 0, apperrors.ErrUnauthenticated
	}

	exists, err := s.repos.Users.Exists(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.NewResourceNotFoundError("user not found")
	}

	if err := s.authorizer.Authorize(actor, authz.OpCreate, authz.OwnedRecordTarget{OwnerID: ownerID}); err != nil {
		return 0, err
	}
	return ownerID, nil
}

func (s *recordSupport) authorizeOwned(actor *authz.Actor, op authz.Operation, ownerID int64) error {
	return s.authorizer.Authorize(actor, op, authz.OwnedRecordTarget{OwnerID: ownerID})
}

// store validates and saves an optional upload. It returns nil when fh is nil.
func (s *recordSupport) store(ctx context.Context, fh *multipart.FileHeader, folder models.FileFolder, field string) (*string, error) {
	if fh == nil {
		return nil, nil
	}
	if err := filestorage.ValidateUpload(fh, folder, field); err != nil {
		return nil, err
	}
	ref, err := s.storage.SaveFile(ctx, fh, folder)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// discard deletes a blob best-effort
func (s *recordSupport) discard(ctx context.Context, ref *string) {
	discardBlob(ctx, s.storage, s.logger, ref)
}

func discardBlob(ctx context.Context, storage filestorage.FileStorage, logger zerolog.Logger, ref *string) {
	if ref == nil || *ref == "" || storage == nil {
		return
	}
	if err := storage.DeleteFile(ctx, *ref); err != nil {
		logger.Warn().Err(err).Str("ref", *ref).Msg("Failed to delete stored file")
	}
}

// requireComplete rejects a full update that leaves out required fields
func requireComplete(partial bool, missing []string) error {
	if partial || len(missing) == 0 {
		return nil
	}
	fields := make(map[string]string, len(missing))
	for _, f := range missing {
		fields[f] = "this field is required"
	}
	return apperrors.NewValidationError(fields)
}
