package catalog

type MovieStatus string

const (
	MovieComingSoon MovieStatus = "COMING_SOON"
	MovieNowShowing MovieStatus = "NOW_SHOWING"
	MovieArchived   MovieStatus = "ARCHIVED"
)

type ShowtimeStatus string

const (
	ShowtimeScheduled ShowtimeStatus = "SCHEDULED"
	ShowtimeCancelled ShowtimeStatus = "CANCELLED"
	ShowtimeFinished  ShowtimeStatus = "FINISHED"
)

func (s ShowtimeStatus) IsBookable() bool {
	return s == ShowtimeScheduled
}
