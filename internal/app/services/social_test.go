package services

import (
	authz "github.com/yigit/campusnet/internal/app/auth"
	"github.com/yigit/campusnet/internal/app/models"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/pkg/apperrors"
)

func (s *ServiceSuite) addPost(actor *authz.Actor, content string) *dto.PostResponse {
	p, err := s.svc.Posts.Create(s.ctx, actor, &dto.CreatePostRequest{Content: content})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) TestSearchUsers() {
	alice := s.signup("alice")
	s.signup("alicia")
	s.signup("bob")

	found, err := s.svc.Users.SearchUsers(s.ctx, nil, "  ALI ")
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal("alicia", found[0].Username)

	found, err = s.svc.Users.SearchUsers(s.ctx, alice, "ali")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("alicia", found[0].Username)

	found, err = s.svc.Users.SearchUsers(s.ctx, nil, "nobody")
	s.Require().NoError(err)
	s.NotNil(found)
	s.Empty(found)
}

func (s *ServiceSuite) TestPostAuthorOnlyEdits() {
	alice := s.signup("alice")
	bob := s.signup("bob")

	_, err := s.svc.Posts.Create(s.ctx, nil, &dto.CreatePostRequest{Content: "hi"})
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
	_, err = s.svc.Posts.Create(s.ctx, alice, &dto.CreatePostRequest{Content: "   "})
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "content")

	p := s.addPost(alice, "  first post ")
	s.Equal("first post", p.Content)
	s.Equal(alice.UserID, p.UserID)
	s.NotNil(p.Likes)

	_, err = s.svc.Posts.Update(s.ctx, bob, p.ID, &dto.UpdatePostRequest{Content: strPtr("mine now")}, true)
	s.ErrorIs(err, apperrors.ErrPermissionDenied)
	s.ErrorIs(s.svc.Posts.Delete(s.ctx, bob, p.ID), apperrors.ErrPermissionDenied)

	_, err = s.svc.Posts.Update(s.ctx, alice, p.ID, &dto.UpdatePostRequest{}, false)
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	s.Contains(apperrors.FieldDetails(err), "content")

	updated, err := s.svc.Posts.Update(s.ctx, alice, p.ID, &dto.UpdatePostRequest{Content: strPtr("edited")}, true)
	s.Require().NoError(err)
	s.Equal("edited", updated.Content)

	s.Require().NoError(s.svc.Posts.Delete(s.ctx, alice, p.ID))
	_, err = s.svc.Posts.Get(s.ctx, p.ID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *ServiceSuite) TestFeedOrderAndLimit() {
	alice := s.signup("alice")
	bob := s.signup("bob")
	s.addPost(alice, "one")
	s.addPost(bob, "two")
	s.addPost(alice, "three")

	feed, err := s.svc.Posts.Feed(s.ctx, nil, 0)
	s.Require().NoError(err)
	s.Require().Len(feed, 3)
	s.Equal("three", feed[0].Content)
	s.Equal("one", feed[2].Content)

	feed, err = s.svc.Posts.Feed(s.ctx, &alice.UserID, 0)
	s.Require().NoError(err)
	s.Len(feed, 2)

	feed, err = s.svc.Posts.Feed(s.ctx, nil, 2)
	s.Require().NoError(err)
	s.Len(feed, 2)
}

func (s *ServiceSuite) TestLikesToggle() {
	alice := s.signup("alice")
	bob := s.signup("bob")
	p := s.addPost(alice, "like me")

	_, err := s.svc.Posts.ToggleLike(s.ctx, nil, p.ID)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)

	liked, err := s.svc.Posts.ToggleLike(s.ctx, bob, p.ID)
	s.Require().NoError(err)
	s.Equal([]int64{bob.UserID}, liked.Likes)
	s.Equal(1, liked.LikeCount)

	unliked, err := s.svc.Posts.ToggleLike(s.ctx, bob, p.ID)
	s.Require().NoError(err)
	s.Empty(unliked.Likes)

	_, err = s.svc.Posts.ToggleLike(s.ctx, bob, 999)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)

	c, err := s.svc.Comments.Create(s.ctx, bob, p.ID, &dto.CreateCommentRequest{Content: "nice"})
	s.Require().NoError(err)
	likedComment, err := s.svc.Comments.ToggleLike(s.ctx, alice, c.ID)
	s.Require().NoError(err)
	s.Equal(1, likedComment.LikeCount)
}

func (s *ServiceSuite) TestCommentRules() {
	alice := s.signup("alice")
	bob := s.signup("bob")
	p := s.addPost(alice, "discuss")

	_, err := s.svc.Comments.Create(s.ctx, nil, p.ID, &dto.CreateCommentRequest{Content: "hi"})
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
	_, err = s.svc.Comments.Create(s.ctx, bob, 999, &dto.CreateCommentRequest{Content: "hi"})
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
	_, err = s.svc.Comments.Create(s.ctx, bob, p.ID, &dto.CreateCommentRequest{Content: " "})
	s.ErrorIs(err, apperrors.ErrValidationFailed)

	first, err := s.svc.Comments.Create(s.ctx, bob, p.ID, &dto.CreateCommentRequest{Content: "first"})
	s.Require().NoError(err)
	_, err = s.svc.Comments.Create(s.ctx, alice, p.ID, &dto.CreateCommentRequest{Content: "second"})
	s.Require().NoError(err)

	comments, err := s.svc.Comments.ListByPost(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(comments, 2)
	s.Equal("second", comments[0].Content)

	post, err := s.svc.Posts.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(2, post.CommentCount)

	s.ErrorIs(s.svc.Comments.Delete(s.ctx, alice, first.ID), apperrors.ErrPermissionDenied)
	s.Require().NoError(s.svc.Comments.Delete(s.ctx, bob, first.ID))

	s.Require().NoError(s.svc.Posts.Delete(s.ctx, alice, p.ID))
	_, err = s.svc.Comments.ListByPost(s.ctx, p.ID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *ServiceSuite) TestConnectionRequestAndAccept() {
	alice := s.signup("alice")
	bob := s.signup("bob")

	_, _, err := s.svc.Connections.Request(s.ctx, alice, alice.UserID)
	s.ErrorIs(err, apperrors.ErrValidationFailed)
	_, _, err = s.svc.Connections.Request(s.ctx, alice, 999)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
	_, _, err = s.svc.Connections.Request(s.ctx, nil, bob.UserID)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)

	sent, created, err := s.svc.Connections.Request(s.ctx, alice, bob.UserID)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(models.ConnectionPending, sent.Status)

	_, _, err = s.svc.Connections.Request(s.ctx, alice, bob.UserID)
	s.ErrorIs(err, apperrors.ErrRequestAlreadySent)

	_, err = s.svc.Connections.Accept(s.ctx, alice, bob.UserID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)

	incoming, err := s.svc.Connections.Incoming(s.ctx, bob)
	s.Require().NoError(err)
	s.Require().Len(incoming, 1)

	accepted, err := s.svc.Connections.Accept(s.ctx, bob, alice.UserID)
	s.Require().NoError(err)
	s.Equal(models.ConnectionAccepted, accepted.Status)
	s.NotNil(accepted.AcceptedAt)

	_, _, err = s.svc.Connections.Request(s.ctx, bob, alice.UserID)
	s.ErrorIs(err, apperrors.ErrAlreadyConnected)

	list, err := s.svc.Connections.List(s.ctx, bob.UserID)
	s.Require().NoError(err)
	s.Len(list, 1)
	_, err = s.svc.Connections.List(s.ctx, 999)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *ServiceSuite) TestMutualRequestConnects() {
	alice := s.signup("alice")
	bob := s.signup("bob")

	_, _, err := s.svc.Connections.Request(s.ctx, alice, bob.UserID)
	s.Require().NoError(err)

	conn, created, err := s.svc.Connections.Request(s.ctx, bob, alice.UserID)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(models.ConnectionAccepted, conn.Status)
	s.Equal(alice.UserID, conn.RequesterID)

	s.Require().NoError(s.svc.Connections.Remove(s.ctx, bob, alice.UserID))
	s.ErrorIs(s.svc.Connections.Remove(s.ctx, bob, alice.UserID), apperrors.ErrResourceNotFound)
}

func (s *ServiceSuite) TestDeleteUserRemovesSocialData() {
	alice := s.signup("alice")
	bob := s.signup("bob")

	bobPost := s.addPost(bob, "bob's post")
	alicePost := s.addPost(alice, "alice's post")
	_, err := s.svc.Posts.ToggleLike(s.ctx, alice, bobPost.ID)
	s.Require().NoError(err)
	aliceComment, err := s.svc.Comments.Create(s.ctx, alice, bobPost.ID, &dto.CreateCommentRequest{Content: "hi bob"})
	s.Require().NoError(err)
	bobComment, err := s.svc.Comments.Create(s.ctx, bob, alicePost.ID, &dto.CreateCommentRequest{Content: "hi alice"})
	s.Require().NoError(err)
	_, err = s.svc.Comments.ToggleLike(s.ctx, alice, bobComment.ID)
	s.Require().NoError(err)
	_, _, err = s.svc.Connections.Request(s.ctx, alice, bob.UserID)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Users.DeleteUser(s.ctx, alice, alice.UserID))

	post, err := s.svc.Posts.Get(s.ctx, bobPost.ID)
	s.Require().NoError(err)
	s.Empty(post.Likes)
	s.Equal(0, post.CommentCount)
	_, err = s.svc.Comments.Get(s.ctx, aliceComment.ID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
	_, err = s.svc.Posts.Get(s.ctx, alicePost.ID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)
	_, err = s.svc.Comments.Get(s.ctx, bobComment.ID)
	s.ErrorIs(err, apperrors.ErrResourceNotFound)

	incoming, err := s.svc.Connections.Incoming(s.ctx, bob)
	s.Require().NoError(err)
	s.Empty(incoming)
}
