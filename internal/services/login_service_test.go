package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTokens struct {
	token string
	err   error
	calls int
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	f.calls++
	return f.token, f.err
}

type fakeProfiles struct {
	profile *models.PersonalRecord
	err     error
	calls   int

	gotAppID  string
	gotMToken string
	gotToken  string
}

func (f *fakeProfiles) FetchProfile(ctx context.Context, appID, mToken, accessToken string) (*models.PersonalRecord, error) {
	f.calls++
	f.gotAppID = appID
	f.gotMToken = mToken
	f.gotToken = accessToken
	return f.profile, f.err
}

type fakeStore struct {
	records  map[string]*models.PersonalRecord
	upserted []*models.PersonalRecord
	getErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*models.PersonalRecord)}
}

func (f *fakeStore) Upsert(ctx context.Context, record *models.PersonalRecord) error {
	f.upserted = append(f.upserted, record)
	f.records[record.CitizenID] = record
	return nil
}

func (f *fakeStore) Get(ctx context.Context, citizenID string) (*models.PersonalRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	record, ok := f.records[citizenID]
	if !ok {
		return nil, models.ErrCitizenNotFound
	}
	return record, nil
}

type fakePending struct {
	parked map[string]*models.PersonalRecord
}

func newFakePending() *fakePending {
	return &fakePending{parked: make(map[string]*models.PersonalRecord)}
}

func (f *fakePending) Park(ctx context.Context, record *models.PersonalRecord) error {
	f.parked[record.CitizenID] = record
	return nil
}

func (f *fakePending) Take(ctx context.Context, citizenID string) (*models.PersonalRecord, error) {
	record, ok := f.parked[citizenID]
	if !ok {
		return nil, models.ErrRegistrationNotFound
	}
	delete(f.parked, citizenID)
	return record, nil
}

func TestLogin_NewCitizenParksProfile(t *testing.T) {
	profile := testRecord()
	tokens := &fakeTokens{token: "bearer-1"}
	profiles := &fakeProfiles{profile: profile}
	store := newFakeStore()
	pending := newFakePending()

	svc := NewLoginService(tokens, profiles, store, pending, zap.NewNop())

	result, err := svc.Login(context.Background(), "app-001", "mtoken-abc")
	require.NoError(t, err)
	assert.True(t, result.NewCitizen)
	assert.Equal(t, profile, result.Record)

	// The fresh token must reach the registry call unchanged.
	assert.Equal(t, "bearer-1", profiles.gotToken)
	assert.Equal(t, "app-001", profiles.gotAppID)
	assert.Equal(t, "mtoken-abc", profiles.gotMToken)

	// Nothing is persisted until the registration is confirmed.
	assert.Empty(t, store.upserted)
	assert.Contains(t, pending.parked, profile.CitizenID)
}

func TestLogin_KnownCitizenUpserts(t *testing.T) {
	profile := testRecord()
	store := newFakeStore()
	store.records[profile.CitizenID] = &models.PersonalRecord{CitizenID: profile.CitizenID, FirstName: "Old"}
	pending := newFakePending()

	svc := NewLoginService(&fakeTokens{token: "bearer-1"}, &fakeProfiles{profile: profile}, store, pending, zap.NewNop())

	result, err := svc.Login(context.Background(), "app-001", "mtoken-abc")
	require.NoError(t, err)
	assert.False(t, result.NewCitizen)

	require.Len(t, store.upserted, 1)
	assert.Equal(t, profile, store.upserted[0])
	assert.Empty(t, pending.parked)
}

func TestLogin_TokenFailureAbortsWorkflow(t *testing.T) {
	tokens := &fakeTokens{err: models.ErrTokenUnavailable}
	profiles := &fakeProfiles{}
	store := newFakeStore()

	svc := NewLoginService(tokens, profiles, store, newFakePending(), zap.NewNop())

	_, err := svc.Login(context.Background(), "app-001", "mtoken-abc")
	assert.ErrorIs(t, err, models.ErrTokenUnavailable)
	assert.Equal(t, 0, profiles.calls, "registry must not be called without a token")
	assert.Empty(t, store.upserted)
}

func TestLogin_ProfileFailureAbortsWorkflow(t *testing.T) {
	profiles := &fakeProfiles{err: models.ErrProfileNotFound}
	store := newFakeStore()

	svc := NewLoginService(&fakeTokens{token: "bearer-1"}, profiles, store, newFakePending(), zap.NewNop())

	_, err := svc.Login(context.Background(), "app-001", "mtoken-abc")
	assert.ErrorIs(t, err, models.ErrProfileNotFound)
	assert.Empty(t, store.upserted)
}

func TestLogin_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := newFakeStore()
	store.getErr = storeErr

	svc := NewLoginService(&fakeTokens{token: "bearer-1"}, &fakeProfiles{profile: testRecord()}, store, newFakePending(), zap.NewNop())

	_, err := svc.Login(context.Background(), "app-001", "mtoken-abc")
	assert.ErrorIs(t, err, storeErr)
}

func TestRegister_MergesEditableFields(t *testing.T) {
	profile := testRecord()
	store := newFakeStore()
	pending := newFakePending()
	pending.parked[profile.CitizenID] = profile

	svc := NewLoginService(&fakeTokens{}, &fakeProfiles{}, store, pending, zap.NewNop())

	record, err := svc.Register(context.Background(), &models.RegisterRequest{
		CitizenID:      profile.CitizenID,
		Mobile:         "0899999999",
		Notification:   "sms",
		AdditionalInfo: "prefers Thai",
	})
	require.NoError(t, err)

	assert.Equal(t, "0899999999", record.Mobile)
	assert.Equal(t, "sms", record.Notification)
	assert.Equal(t, "prefers Thai", record.AdditionalInfo)

	// Identifying fields come from the parked profile, not the request.
	assert.Equal(t, "u-1", record.UserID)
	assert.Equal(t, "Somchai", record.FirstName)

	require.Len(t, store.upserted, 1)
	assert.Empty(t, pending.parked, "confirmation consumes the parked profile")
}

func TestRegister_KeepsParkedFieldsWhenRequestOmitsThem(t *testing.T) {
	profile := testRecord()
	store := newFakeStore()
	pending := newFakePending()
	pending.parked[profile.CitizenID] = profile

	svc := NewLoginService(&fakeTokens{}, &fakeProfiles{}, store, pending, zap.NewNop())

	record, err := svc.Register(context.Background(), &models.RegisterRequest{CitizenID: profile.CitizenID})
	require.NoError(t, err)
	assert.Equal(t, "0812345678", record.Mobile)
	assert.Equal(t, "enabled", record.Notification)
}

func TestRegister_NoPendingRegistration(t *testing.T) {
	store := newFakeStore()

	svc := NewLoginService(&fakeTokens{}, &fakeProfiles{}, store, newFakePending(), zap.NewNop())

	_, err := svc.Register(context.Background(), &models.RegisterRequest{CitizenID: "1234567890123"})
	assert.ErrorIs(t, err, models.ErrRegistrationNotFound)
	assert.Empty(t, store.upserted)
}

func TestLookup(t *testing.T) {
	profile := testRecord()
	store := newFakeStore()
	store.records[profile.CitizenID] = profile

	svc := NewLoginService(&fakeTokens{}, &fakeProfiles{}, store, newFakePending(), zap.NewNop())

	record, err := svc.Lookup(context.Background(), profile.CitizenID)
	require.NoError(t, err)
	assert.Equal(t, profile, record)

	_, err = svc.Lookup(context.Background(), "9999999999999")
	assert.ErrorIs(t, err, models.ErrCitizenNotFound)
}
