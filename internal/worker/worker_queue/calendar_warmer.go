package worker_queue

import (
	"strconv"
	"time"

	"github.com/f1catchup/f1catchup/internal/config"
)

type CalendarWarmerQueueItem struct {
	Year int
}

var CalendarWarmerQueue = WorkerQueue[CalendarWarmerQueueItem]{
	debounceTime: 1 * time.Minute,
	getKey: func(item CalendarWarmerQueueItem) string {
		return strconv.Itoa(item.Year)
	},
	transform: func(item *CalendarWarmerQueueItem) *CalendarWarmerQueueItem {
		if item.Year < config.Calendar.MinSeason {
			return nil
		}
		return item
	},
	Disabled: config.Calendar.WarmInterval == 0,
}
