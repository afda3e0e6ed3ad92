// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/mock"
	"github.com/MKhiriev/go-book-giveaway/internal/store"
	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// alice owns book 10; bob filed request 20 for it.
var (
	alicesBook  = models.Book{ID: 10, Title: "Dune", OwnerID: 1}
	bobsRequest = models.BookRequest{ID: 20, BookID: 10, RequesterID: 2, Location: "Library"}
)

func newTestRequestSvc(t *testing.T) (BookRequestService, *mock.MockBookRequestRepository, *mock.MockBookRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	requests := mock.NewMockBookRequestRepository(ctrl)
	books := mock.NewMockBookRepository(ctrl)
	return NewBookRequestService(requests, books, logger.Nop()), requests, books
}

// ── CreateRequest ────────────────────────────────────────────────────────────

func TestBookRequestService_CreateRequest_Success(t *testing.T) {
	svc, requests, books := newTestRequestSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		books.EXPECT().GetBook(ctx, int64(10)).Return(alicesBook, nil),
		requests.EXPECT().RequestExists(ctx, int64(10), bob.UserID).Return(false, nil),
		requests.EXPECT().CreateRequest(ctx, models.BookRequest{BookID: 10, RequesterID: 2, Location: "Library"}).
			Return(bobsRequest, nil),
	)

	got, err := svc.CreateRequest(ctx, bob, 10, " Library ")

	require.NoError(t, err)
	assert.Equal(t, bobsRequest, got)
}

func TestBookRequestService_CreateRequest_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(requests *mock.MockBookRequestRepository, books *mock.MockBookRepository)
		user    models.User
		wantErr error
	}{
		{
			name: "own book",
			user: alice,
			setup: func(_ *mock.MockBookRequestRepository, books *mock.MockBookRepository) {
				books.EXPECT().GetBook(gomock.Any(), int64(10)).Return(alicesBook, nil)
			},
			wantErr: ErrSelfRequestForbidden,
		},
		{
			name: "missing book",
			user: bob,
			setup: func(_ *mock.MockBookRequestRepository, books *mock.MockBookRepository) {
				books.EXPECT().GetBook(gomock.Any(), int64(10)).Return(models.Book{}, store.ErrBookNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "second request",
			user: bob,
			setup: func(requests *mock.MockBookRequestRepository, books *mock.MockBookRepository) {
				books.EXPECT().GetBook(gomock.Any(), int64(10)).Return(alicesBook, nil)
				requests.EXPECT().RequestExists(gomock.Any(), int64(10), int64(2)).Return(true, nil)
			},
			wantErr: ErrDuplicateRequest,
		},
		{
			name: "second request racing the first",
			user: bob,
			setup: func(requests *mock.MockBookRequestRepository, books *mock.MockBookRepository) {
				books.EXPECT().GetBook(gomock.Any(), int64(10)).Return(alicesBook, nil)
				requests.EXPECT().RequestExists(gomock.Any(), int64(10), int64(2)).Return(false, nil)
				requests.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).Return(models.BookRequest{}, store.ErrRequestAlreadyExists)
			},
			wantErr: ErrDuplicateRequest,
		},
		{
			name: "book deleted before insert",
			user: bob,
			setup: func(requests *mock.MockBookRequestRepository, books *mock.MockBookRepository) {
				books.EXPECT().GetBook(gomock.Any(), int64(10)).Return(alicesBook, nil)
				requests.EXPECT().RequestExists(gomock.Any(), int64(10), int64(2)).Return(false, nil)
				requests.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).Return(models.BookRequest{}, store.ErrReferenceNotFound)
			},
			wantErr: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, requests, books := newTestRequestSvc(t)
			tt.setup(requests, books)

			_, err := svc.CreateRequest(context.Background(), tt.user, 10, "Library")

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookRequestService_CreateRequest_BlankLocation(t *testing.T) {
	svc, _, _ := newTestRequestSvc(t)

	_, err := svc.CreateRequest(context.Background(), bob, 10, "  ")

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Listing ──────────────────────────────────────────────────────────────────

func TestBookRequestService_ListBookRequests_OwnerOnly(t *testing.T) {
	svc, requests, books := newTestRequestSvc(t)
	ctx := context.Background()

	books.EXPECT().GetBook(ctx, int64(10)).Return(alicesBook, nil).Times(2)
	requests.EXPECT().ListRequestsByBook(ctx, int64(10)).Return([]models.BookRequest{bobsRequest}, nil)

	got, err := svc.ListBookRequests(ctx, alice, 10)
	require.NoError(t, err)
	assert.Equal(t, []models.BookRequest{bobsRequest}, got)

	_, err = svc.ListBookRequests(ctx, bob, 10)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestBookRequestService_ListMyRequests(t *testing.T) {
	svc, requests, _ := newTestRequestSvc(t)

	requests.EXPECT().ListRequestsByRequester(gomock.Any(), bob.UserID).Return([]models.BookRequest{bobsRequest}, nil)

	got, err := svc.ListMyRequests(context.Background(), bob)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// ── Accept / Withdraw ────────────────────────────────────────────────────────

func TestBookRequestService_AcceptRequest(t *testing.T) {
	tests := []struct {
		name       string
		user       models.User
		wantAccept bool
		wantErr    error
	}{
		{name: "book owner accepts", user: alice, wantAccept: true},
		{name: "requester cannot accept", user: bob, wantErr: ErrNotOwner},
		{name: "stranger sees nothing", user: carol, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, requests, books := newTestRequestSvc(t)
			requests.EXPECT().GetRequest(gomock.Any(), int64(20)).Return(bobsRequest, nil)
			books.EXPECT().GetBook(gomock.Any(), int64(10)).Return(alicesBook, nil)
			if tt.wantAccept {
				requests.EXPECT().AcceptRequest(gomock.Any(), int64(20)).Return(nil)
			}

			got, err := svc.AcceptRequest(context.Background(), tt.user, 20)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Accepted)
		})
	}
}

func TestBookRequestService_AcceptRequest_Missing(t *testing.T) {
	svc, requests, _ := newTestRequestSvc(t)

	requests.EXPECT().GetRequest(gomock.Any(), int64(404)).Return(models.BookRequest{}, store.ErrRequestNotFound)

	_, err := svc.AcceptRequest(context.Background(), alice, 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookRequestService_WithdrawRequest(t *testing.T) {
	tests := []struct {
		name       string
		user       models.User
		wantDelete bool
		wantErr    error
	}{
		{name: "requester withdraws", user: bob, wantDelete: true},
		{name: "book owner cannot withdraw", user: alice, wantErr: ErrNotOwner},
		{name: "stranger sees nothing", user: carol, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, requests, books := newTestRequestSvc(t)
			requests.EXPECT().GetRequest(gomock.Any(), int64(20)).Return(bobsRequest, nil)
			books.EXPECT().GetBook(gomock.Any(), int64(10)).Return(alicesBook, nil)
			if tt.wantDelete {
				requests.EXPECT().DeleteRequest(gomock.Any(), int64(20)).Return(nil)
			}

			err := svc.WithdrawRequest(context.Background(), tt.user, 20)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
