package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/analytics"
	"github.com/Akr1040317/hiveUniDash/core/bug"
	"github.com/Akr1040317/hiveUniDash/core/content"
	"github.com/Akr1040317/hiveUniDash/core/event"
	"github.com/Akr1040317/hiveUniDash/core/feature"
	"github.com/Akr1040317/hiveUniDash/core/quiz"
	"github.com/Akr1040317/hiveUniDash/core/user"
)

var (
	_ user.Repository      = (*UserRepository)(nil)
	_ content.Repository   = (*ContentRepository)(nil)
	_ bug.Repository       = (*BugRepository)(nil)
	_ feature.Repository   = (*FeatureRepository)(nil)
	_ event.Repository     = (*EventRepository)(nil)
	_ quiz.Repository      = (*QuizRepository)(nil)
	_ analytics.Repository = (*AnalyticsRepository)(nil)
)

// users

type UserRepository struct{ store *Store }

func NewUserRepository(store *Store) *UserRepository { return &UserRepository{store: store} }

func (repo *UserRepository) CreateUser(_ context.Context, region string, usr user.User) (user.User, error) {
	if err := repo.store.err(); err != nil {
		return user.User{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	if usr.ID == "" {
		usr.ID = uuid.New().String()
	}
	rd := repo.store.region(region)
	rd.users = append(rd.users, usr)
	return usr, nil
}

func (repo *UserRepository) QueryAllUsers(_ context.Context, region string) ([]user.User, error) {
	if err := repo.store.err(); err != nil {
		return nil, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	rd := repo.store.regionView(region)
	users := make([]user.User, len(rd.users))
	copy(users, rd.users)
	return users, nil
}

func (repo *UserRepository) GetUserByID(_ context.Context, region, id string) (user.User, error) {
	if err := repo.store.err(); err != nil {
		return user.User{}, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	for _, usr := range repo.store.regionView(region).users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) GetUserByEmail(_ context.Context, region, email string) (user.User, error) {
	if err := repo.store.err(); err != nil {
		return user.User{}, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	for _, usr := range repo.store.regionView(region).users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) UpdateUser(_ context.Context, region string, usr user.User) (user.User, error) {
	if err := repo.store.err(); err != nil {
		return user.User{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.users {
		if rd.users[i].ID == usr.ID {
			rd.users[i] = usr
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) DeleteUsersByID(_ context.Context, region string, ids ...string) error {
	if err := repo.store.err(); err != nil {
		return err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	kept := rd.users[:0]
	for _, usr := range rd.users {
		drop := false
		for _, id := range ids {
			if usr.ID == id {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, usr)
		}
	}
	rd.users = kept
	return nil
}

// content

type ContentRepository struct{ store *Store }

func NewContentRepository(store *Store) *ContentRepository { return &ContentRepository{store: store} }

func contentFields(cnt content.Content) map[string]interface{} {
	return map[string]interface{}{
		"region": cnt.Region, "status": cnt.Status, "type": cnt.Type,
	}
}

func (repo *ContentRepository) CreateContent(_ context.Context, region string, cnt content.Content) (content.Content, error) {
	if err := repo.store.err(); err != nil {
		return content.Content{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	if cnt.ID == "" {
		cnt.ID = uuid.New().String()
	}
	rd := repo.store.region(region)
	rd.content = append(rd.content, cnt)
	return cnt, nil
}

func (repo *ContentRepository) GetContentByID(_ context.Context, region, id string) (content.Content, error) {
	if err := repo.store.err(); err != nil {
		return content.Content{}, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	for _, cnt := range repo.store.regionView(region).content {
		if cnt.ID == id {
			return cnt, nil
		}
	}
	return content.Content{}, content.ErrNotFound
}

func (repo *ContentRepository) FilterContent(_ context.Context, region string, filter core.Filter) ([]content.Content, error) {
	if err := repo.store.err(); err != nil {
		return nil, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	filter = filter.Clean()
	items := make([]content.Content, 0)
	for _, cnt := range repo.store.regionView(region).content {
		if matches(contentFields(cnt), filter) {
			items = append(items, cnt)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (repo *ContentRepository) UpdateContent(_ context.Context, region, id string, fields core.Filter) (content.Content, error) {
	if err := repo.store.err(); err != nil {
		return content.Content{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.content {
		if rd.content[i].ID != id {
			continue
		}
		cnt := &rd.content[i]
		for key, val := range fields {
			s, _ := val.(string)
			switch key {
			case "title":
				cnt.Title = s
			case "description":
				cnt.Description = s
			case "type":
				cnt.Type = s
			case "status":
				cnt.Status = s
			case "difficulty":
				cnt.Difficulty = s
			case "author":
				cnt.Author = s
			case "due_date":
				cnt.DueDate = s
			}
		}
		cnt.UpdatedAt = nowUTC()
		return *cnt, nil
	}
	return content.Content{}, content.ErrNotFound
}

func (repo *ContentRepository) DeleteContent(_ context.Context, region, id string) error {
	if err := repo.store.err(); err != nil {
		return err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.content {
		if rd.content[i].ID == id {
			rd.content = append(rd.content[:i], rd.content[i+1:]...)
			return nil
		}
	}
	return content.ErrNotFound
}

// bugs

type BugRepository struct{ store *Store }

func NewBugRepository(store *Store) *BugRepository { return &BugRepository{store: store} }

func bugFields(b bug.Bug) map[string]interface{} {
	return map[string]interface{}{
		"region": b.Region, "status": b.Status, "severity": b.Severity, "assignee": b.Assignee,
	}
}

func (repo *BugRepository) CreateBug(_ context.Context, region string, b bug.Bug) (bug.Bug, error) {
	if err := repo.store.err(); err != nil {
		return bug.Bug{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	rd := repo.store.region(region)
	rd.bugs = append(rd.bugs, b)
	return b, nil
}

func (repo *BugRepository) GetBugByID(_ context.Context, region, id string) (bug.Bug, error) {
	if err := repo.store.err(); err != nil {
		return bug.Bug{}, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	for _, b := range repo.store.regionView(region).bugs {
		if b.ID == id {
			return b, nil
		}
	}
	return bug.Bug{}, bug.ErrNotFound
}

func (repo *BugRepository) FilterBugs(_ context.Context, region string, filter core.Filter) ([]bug.Bug, error) {
	if err := repo.store.err(); err != nil {
		return nil, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	filter = filter.Clean()
	items := make([]bug.Bug, 0)
	for _, b := range repo.store.regionView(region).bugs {
		if matches(bugFields(b), filter) {
			items = append(items, b)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (repo *BugRepository) UpdateBug(_ context.Context, region, id string, fields core.Filter) (bug.Bug, error) {
	if err := repo.store.err(); err != nil {
		return bug.Bug{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.bugs {
		if rd.bugs[i].ID != id {
			continue
		}
		b := &rd.bugs[i]
		for key, val := range fields {
			s, _ := val.(string)
			switch key {
			case "title":
				b.Title = s
			case "description":
				b.Description = s
			case "status":
				b.Status = s
			case "severity":
				b.Severity = s
			case "assignee":
				b.Assignee = s
			case "platform":
				b.Platform = s
			case "stepsToReproduce":
				b.StepsToReproduce = s
			case "expectedBehavior":
				b.ExpectedBehavior = s
			case "actualBehavior":
				b.ActualBehavior = s
			case "dueDate":
				b.DueDate = s
			}
		}
		b.UpdatedAt = nowUTC()
		return *b, nil
	}
	return bug.Bug{}, bug.ErrNotFound
}

func (repo *BugRepository) DeleteBug(_ context.Context, region, id string) error {
	if err := repo.store.err(); err != nil {
		return err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.bugs {
		if rd.bugs[i].ID == id {
			rd.bugs = append(rd.bugs[:i], rd.bugs[i+1:]...)
			return nil
		}
	}
	return bug.ErrNotFound
}

// features

type FeatureRepository struct{ store *Store }

func NewFeatureRepository(store *Store) *FeatureRepository { return &FeatureRepository{store: store} }

func featureFields(f feature.Feature) map[string]interface{} {
	return map[string]interface{}{
		"region": f.Region, "status": f.Status, "category": f.Category, "priority": f.Priority,
	}
}

func (repo *FeatureRepository) CreateFeature(_ context.Context, region string, f feature.Feature) (feature.Feature, error) {
	if err := repo.store.err(); err != nil {
		return feature.Feature{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	rd := repo.store.region(region)
	rd.features = append(rd.features, f)
	return f, nil
}

func (repo *FeatureRepository) GetFeatureByID(_ context.Context, region, id string) (feature.Feature, error) {
	if err := repo.store.err(); err != nil {
		return feature.Feature{}, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	for _, f := range repo.store.regionView(region).features {
		if f.ID == id {
			return f, nil
		}
	}
	return feature.Feature{}, feature.ErrNotFound
}

func (repo *FeatureRepository) FilterFeatures(_ context.Context, region string, filter core.Filter) ([]feature.Feature, error) {
	if err := repo.store.err(); err != nil {
		return nil, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	filter = filter.Clean()
	items := make([]feature.Feature, 0)
	for _, f := range repo.store.regionView(region).features {
		if matches(featureFields(f), filter) {
			items = append(items, f)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (repo *FeatureRepository) UpdateFeature(_ context.Context, region, id string, fields core.Filter) (feature.Feature, error) {
	if err := repo.store.err(); err != nil {
		return feature.Feature{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.features {
		if rd.features[i].ID != id {
			continue
		}
		f := &rd.features[i]
		for key, val := range fields {
			s, _ := val.(string)
			switch key {
			case "title":
				f.Title = s
			case "description":
				f.Description = s
			case "status":
				f.Status = s
			case "category":
				f.Category = s
			case "priority":
				f.Priority = s
			case "assignee":
				f.Assignee = s
			case "dueDate":
				f.DueDate = s
			}
		}
		f.UpdatedAt = nowUTC()
		return *f, nil
	}
	return feature.Feature{}, feature.ErrNotFound
}

func (repo *FeatureRepository) DeleteFeature(_ context.Context, region, id string) error {
	if err := repo.store.err(); err != nil {
		return err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.features {
		if rd.features[i].ID == id {
			rd.features = append(rd.features[:i], rd.features[i+1:]...)
			return nil
		}
	}
	return feature.ErrNotFound
}

// events

type EventRepository struct{ store *Store }

func NewEventRepository(store *Store) *EventRepository { return &EventRepository{store: store} }

func eventFields(evt event.Event) map[string]interface{} {
	return map[string]interface{}{
		"region": evt.Region, "type": evt.Type, "date": evt.Date,
	}
}

func (repo *EventRepository) CreateEvent(_ context.Context, region string, evt event.Event) (event.Event, error) {
	if err := repo.store.err(); err != nil {
		return event.Event{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	if evt.ID == "" {
		evt.ID = uuid.New().String()
	}
	rd := repo.store.region(region)
	rd.events = append(rd.events, evt)
	return evt, nil
}

func (repo *EventRepository) GetEventByID(_ context.Context, region, id string) (event.Event, error) {
	if err := repo.store.err(); err != nil {
		return event.Event{}, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	for _, evt := range repo.store.regionView(region).events {
		if evt.ID == id {
			return evt, nil
		}
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *EventRepository) FilterEvents(_ context.Context, region string, filter core.Filter) ([]event.Event, error) {
	if err := repo.store.err(); err != nil {
		return nil, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	filter = filter.Clean()
	items := make([]event.Event, 0)
	for _, evt := range repo.store.regionView(region).events {
		if matches(eventFields(evt), filter) {
			items = append(items, evt)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date < items[j].Date })
	return items, nil
}

func (repo *EventRepository) UpdateEvent(_ context.Context, region, id string, fields core.Filter) (event.Event, error) {
	if err := repo.store.err(); err != nil {
		return event.Event{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.events {
		if rd.events[i].ID != id {
			continue
		}
		evt := &rd.events[i]
		for key, val := range fields {
			switch key {
			case "attendees":
				if attendees, ok := val.([]string); ok {
					evt.Attendees = attendees
				}
				continue
			}
			s, _ := val.(string)
			switch key {
			case "title":
				evt.Title = s
			case "description":
				evt.Description = s
			case "type":
				evt.Type = s
			case "date":
				evt.Date = s
			case "startTime":
				evt.StartTime = s
			case "endTime":
				evt.EndTime = s
			case "location":
				evt.Location = s
			}
		}
		evt.UpdatedAt = nowUTC()
		return *evt, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *EventRepository) DeleteEvent(_ context.Context, region, id string) error {
	if err := repo.store.err(); err != nil {
		return err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.events {
		if rd.events[i].ID == id {
			rd.events = append(rd.events[:i], rd.events[i+1:]...)
			return nil
		}
	}
	return event.ErrNotFound
}

// quizzes

type QuizRepository struct{ store *Store }

func NewQuizRepository(store *Store) *QuizRepository { return &QuizRepository{store: store} }

func quizFields(q quiz.Quiz) map[string]interface{} {
	return map[string]interface{}{
		"region": q.Region, "isWebinar": q.IsWebinar,
	}
}

func (repo *QuizRepository) CreateQuiz(_ context.Context, region string, q quiz.Quiz) (quiz.Quiz, error) {
	if err := repo.store.err(); err != nil {
		return quiz.Quiz{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	rd := repo.store.region(region)
	rd.quizzes = append(rd.quizzes, q)
	return q, nil
}

func (repo *QuizRepository) GetQuizByID(_ context.Context, region, id string) (quiz.Quiz, error) {
	if err := repo.store.err(); err != nil {
		return quiz.Quiz{}, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	for _, q := range repo.store.regionView(region).quizzes {
		if q.ID == id {
			return q, nil
		}
	}
	return quiz.Quiz{}, quiz.ErrNotFound
}

func (repo *QuizRepository) FilterQuizzes(_ context.Context, region string, filter core.Filter) ([]quiz.Quiz, error) {
	if err := repo.store.err(); err != nil {
		return nil, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	filter = filter.Clean()
	items := make([]quiz.Quiz, 0)
	for _, q := range repo.store.regionView(region).quizzes {
		if matches(quizFields(q), filter) {
			items = append(items, q)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (repo *QuizRepository) DeleteQuiz(_ context.Context, region, id string) error {
	if err := repo.store.err(); err != nil {
		return err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	rd := repo.store.region(region)
	for i := range rd.quizzes {
		if rd.quizzes[i].ID == id {
			rd.quizzes = append(rd.quizzes[:i], rd.quizzes[i+1:]...)
			return nil
		}
	}
	return quiz.ErrNotFound
}

// analytics

type AnalyticsRepository struct{ store *Store }

func NewAnalyticsRepository(store *Store) *AnalyticsRepository {
	return &AnalyticsRepository{store: store}
}

func entryFields(e analytics.Entry) map[string]interface{} {
	return map[string]interface{}{
		"region": e.Region, "metric": e.Metric, "date": e.Date,
	}
}

func (repo *AnalyticsRepository) CreateEntry(_ context.Context, region string, e analytics.Entry) (analytics.Entry, error) {
	if err := repo.store.err(); err != nil {
		return analytics.Entry{}, err
	}
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	rd := repo.store.region(region)
	rd.analytics = append(rd.analytics, e)
	return e, nil
}

func (repo *AnalyticsRepository) FilterEntries(_ context.Context, region string, filter core.Filter) ([]analytics.Entry, error) {
	if err := repo.store.err(); err != nil {
		return nil, err
	}
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()
	filter = filter.Clean()
	items := make([]analytics.Entry, 0)
	for _, e := range repo.store.regionView(region).analytics {
		if matches(entryFields(e), filter) {
			items = append(items, e)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date < items[j].Date })
	return items, nil
}

func nowUTC() time.Time { return time.Now().UTC() }
