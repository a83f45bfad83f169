package word2vec

import "github.com/prometheus/client_golang/prometheus"

var (
	learningRateGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bivec_learning_rate",
			Help: "current monolingual learning rate",
		},
	)
	wordsProcessedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bivec_words_processed_total",
			Help: "training words read, before subsampling",
		},
		[]string{"lang"},
	)
	vocabSizeGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bivec_vocab_size",
			Help: "number of vocabulary entries",
		},
		[]string{"lang"},
	)
	epochsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bivec_epochs_completed",
			Help: "number of finished training epochs",
		},
	)
)

func init() {
	prometheus.MustRegister(learningRateGauge, wordsProcessedCounter, vocabSizeGauge, epochsGauge)
}
