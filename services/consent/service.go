package consent

import (
	"context"

	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/lib/mypublisher"
	"github.com/MarcGrol/furniturestore/lib/mystore"
	"github.com/MarcGrol/furniturestore/lib/mytime"
	"github.com/MarcGrol/furniturestore/lib/myuuid"
)

type service struct {
	consentStore mystore.Store[ConsentRecord]
	publisher    mypublisher.Publisher
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[ConsentRecord], pub mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		consentStore: store,
		publisher:    pub,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}

// save overwrites any earlier decision of the visitor.
func (s *service) save(c context.Context, visitorID string, statistics bool, marketing bool, userAgent string) (string, Consent, error) {
	if visitorID == "" {
		visitorID = s.uuider.Create()
	}

	consent := Consent{
		Necessary:  true,
		Statistics: statistics,
		Marketing:  marketing,
		Timestamp:  s.nower.Now(),
	}

	s.logger.Log(c, visitorID, mylog.SeverityInfo, "Visitor %s consents to statistics:%v marketing:%v", visitorID, statistics, marketing)

	err := s.consentStore.RunInTransaction(c, func(c context.Context) error {
		err := s.consentStore.Put(c, visitorID, ConsentRecord{
			VisitorID:  visitorID,
			Necessary:  consent.Necessary,
			Statistics: consent.Statistics,
			Marketing:  consent.Marketing,
			Timestamp:  consent.Timestamp,
			UserAgent:  userAgent,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, TopicName, ConsentSaved{
			VisitorID:  visitorID,
			Statistics: consent.Statistics,
			Marketing:  consent.Marketing,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return "", Consent{}, err
	}

	return visitorID, consent, nil
}
