package models

type PostType string
type WorkType string
type CompetitionStatus string
type UserRole string

const (
	// Работодатель ищет сотрудника - раздел "вакансии" (/jobs)
	PostTypeSeekingWorker PostType = "seeking_worker"
	// Соискатель ищет работу - раздел "кандидаты" (/workers)
	PostTypeSeekingJob PostType = "seeking_job"

	WorkTypeFullTime  WorkType = "full_time"
	WorkTypePartTime  WorkType = "part_time"
	WorkTypeRemote    WorkType = "remote"
	WorkTypeContract  WorkType = "contract"
	WorkTypeFreelance WorkType = "freelance"

	CompetitionStatusOpen   CompetitionStatus = "open"
	CompetitionStatusClosed CompetitionStatus = "closed"

	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (p PostType) IsValid() bool {
	return p == PostTypeSeekingWorker || p == PostTypeSeekingJob
}

// Section - сегмент URL публичной страницы объявления
func (p PostType) Section() string {
	if p == PostTypeSeekingJob {
		return "workers"
	}
	return "jobs"
}

func (w WorkType) IsValid() bool {
	switch w {
	case WorkTypeFullTime, WorkTypePartTime, WorkTypeRemote, WorkTypeContract, WorkTypeFreelance:
		return true
	}
	return false
}
