package usecases

import (
	"time"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/repositories"
	"github.com/checkmarble/challenge-backend/usecases/sheet"
)

type Usecases struct {
	Repositories    repositories.Repositories
	campaign        models.CampaignConfig
	importBucketUrl string
	defaultEncoding string
}

type Option func(*options)

func WithCampaign(campaign models.CampaignConfig) Option {
	return func(o *options) {
		o.campaign = campaign
	}
}

func WithImportBucketUrl(bucketUrl string) Option {
	return func(o *options) {
		o.importBucketUrl = bucketUrl
	}
}

func WithDefaultEncoding(encoding string) Option {
	return func(o *options) {
		o.defaultEncoding = encoding
	}
}

type options struct {
	campaign        models.CampaignConfig
	importBucketUrl string
	defaultEncoding string
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := options{
		campaign:        models.CampaignConfig{Location: time.UTC},
		defaultEncoding: sheet.EncodingAuto,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.campaign.Location == nil {
		o.campaign.Location = time.UTC
	}

	return Usecases{
		Repositories:    repositories,
		campaign:        o.campaign,
		importBucketUrl: o.importBucketUrl,
		defaultEncoding: o.defaultEncoding,
	}
}

func (usecases Usecases) NewImportUsecase() ImportUsecase {
	return ImportUsecase{
		repository:      usecases.Repositories.LeaderboardRepository,
		blobRepository:  usecases.Repositories.BlobRepository,
		clock:           usecases.Repositories.Clock,
		location:        usecases.campaign.Location,
		importBucketUrl: usecases.importBucketUrl,
		defaultEncoding: usecases.defaultEncoding,
	}
}

func (usecases Usecases) NewLeaderboardUsecase() LeaderboardUsecase {
	return LeaderboardUsecase{
		repository: usecases.Repositories.LeaderboardRepository,
		clock:      usecases.Repositories.Clock,
		window:     usecases.campaign.Window,
	}
}

func (usecases Usecases) NewRegionUsecase() RegionUsecase {
	return RegionUsecase{
		repository: usecases.Repositories.LeaderboardRepository,
	}
}

func (usecases Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		repository: usecases.Repositories.LeaderboardRepository,
	}
}
