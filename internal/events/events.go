package events

import "github.com/amco/vacancies/internal/entities"

// Handlers subscribed to these topics run synchronously inside Publish
// unless they were registered with SubscribeAsync.
const (
	JobAddedTopic             = "JobAddedEvent"
	JobDeletedTopic           = "JobDeletedEvent"
	ApplicationSubmittedTopic = "ApplicationSubmittedEvent"
	ApplicationDeletedTopic   = "ApplicationDeletedEvent"
)

type JobAdded struct {
	Job entities.Job
}

type JobDeleted struct {
	Job entities.Job
}

type ApplicationSubmitted struct {
	Job         entities.Job
	Application entities.AppliedJob
}

type ApplicationDeleted struct {
	Application entities.AppliedJob
}
