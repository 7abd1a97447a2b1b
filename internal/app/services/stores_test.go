package services

import (
	"context"
	"time"

	"github.com/smartexam/backend/internal/app/models"
	"github.com/smartexam/backend/internal/llm"
	"github.com/smartexam/backend/internal/pkg/apperrors"
)

// In-memory store fakes shared by the service tests.

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) addUser(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	f.addUser(user)
	return user.ID, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string, role models.RoleType) (bool, error) {
	for _, user := range f.users {
		if user.Email == email && user.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) GetThemePreference(_ context.Context, userID int64) (*string, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user.ThemePreference, nil
}

func (f *fakeUserStore) UpdateThemePreference(_ context.Context, userID int64, theme string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.ThemePreference = &theme
	return nil
}

type storedToken struct {
	userID  int64
	expires time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expires: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenUser(_ context.Context, token string) (int64, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.expires) {
		return 0, apperrors.ErrTokenExpired
	}
	return stored.userID, nil
}

func (f *fakeTokenStore) HasActiveToken(_ context.Context, userID int64) (bool, error) {
	for _, stored := range f.tokens {
		if stored.userID == userID && !stored.revoked && time.Now().Before(stored.expires) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeUserToken(_ context.Context, userID int64, token string) error {
	stored, ok := f.tokens[token]
	if !ok || stored.userID != userID {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

type fakeExamStore struct {
	exams  map[int64]*models.Exam
	nextID int64
}

func newFakeExamStore() *fakeExamStore {
	return &fakeExamStore{exams: map[int64]*models.Exam{}, nextID: 1}
}

func (f *fakeExamStore) addExam(exam *models.Exam) *models.Exam {
	if exam.ID == 0 {
		exam.ID = f.nextID
		f.nextID++
	}
	f.exams[exam.ID] = exam
	return exam
}

func (f *fakeExamStore) CreateExam(_ context.Context, exam *models.Exam) (int64, error) {
	f.addExam(exam)
	return exam.ID, nil
}

func (f *fakeExamStore) GetExamByID(_ context.Context, id int64) (*models.Exam, error) {
	exam, ok := f.exams[id]
	if !ok {
		return nil, apperrors.ErrExamNotFound
	}
	return exam, nil
}

func (f *fakeExamStore) GetExamByCode(_ context.Context, code string) (*models.Exam, error) {
	for _, exam := range f.exams {
		if exam.Code == code {
			return exam, nil
		}
	}
	return nil, apperrors.ErrExamNotFound
}

func (f *fakeExamStore) GetExamsByOwner(_ context.Context, ownerID int64) ([]*models.Exam, error) {
	var exams []*models.Exam
	for _, exam := range f.exams {
		if exam.CreatedBy == ownerID {
			exams = append(exams, exam)
		}
	}
	return exams, nil
}

func (f *fakeExamStore) DeleteExam(_ context.Context, id int64) error {
	if _, ok := f.exams[id]; !ok {
		return apperrors.ErrExamNotFound
	}
	delete(f.exams, id)
	return nil
}

type fakeSubmissionStore struct {
	submissions map[int64]*models.Submission
	nextID      int64
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{submissions: map[int64]*models.Submission{}, nextID: 1}
}

func (f *fakeSubmissionStore) CreateSubmission(_ context.Context, submission *models.Submission) error {
	submission.ID = f.nextID
	submission.CreatedAt = time.Now()
	f.nextID++
	f.submissions[submission.ID] = submission
	return nil
}

func (f *fakeSubmissionStore) GetSubmissionByID(_ context.Context, id int64) (*models.Submission, error) {
	submission, ok := f.submissions[id]
	if !ok {
		return nil, apperrors.ErrSubmissionNotFound
	}
	return submission, nil
}

func (f *fakeSubmissionStore) GetSubmissionsByExam(_ context.Context, examID int64) ([]*models.Submission, error) {
	var submissions []*models.Submission
	for id := int64(1); id < f.nextID; id++ {
		if submission, ok := f.submissions[id]; ok && submission.ExamID == examID {
			submissions = append(submissions, submission)
		}
	}
	return submissions, nil
}

type fakeGenerator struct {
	questions []models.Question
	err       error
	gotParams llm.GenerateParams
}

func (f *fakeGenerator) GenerateMCQs(_ context.Context, params llm.GenerateParams) ([]models.Question, error) {
	f.gotParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}
